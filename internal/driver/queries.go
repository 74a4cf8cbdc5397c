package driver

// Clients and notes are stored as (:Client)-[:HAS_NOTE]->(:Note). All
// properties are scalars: timestamps are fixed-width UTC strings so that
// ORDER BY sorts them chronologically, and emotion tags are a JSON string.

var IndexQueries = []string{
	"CREATE INDEX ON :Client(id);",
	"CREATE INDEX ON :Note(id);",
	"CREATE INDEX ON :Note(client_id);",
}

const (
	CreateClientQuery = `
		CREATE (c:Client {id: $id})
		SET c += $props
		RETURN c.id AS id
	`

	GetClientQuery = `
		MATCH (c:Client {id: $id})
		RETURN properties(c) AS client
	`

	ListClientsQuery = `
		MATCH (c:Client)
		RETURN properties(c) AS client
		ORDER BY c.last_name, c.first_name
	`

	UpdateClientQuery = `
		MATCH (c:Client {id: $id})
		SET c += $props
		RETURN c.id AS id
	`

	DeleteClientQuery = `
		MATCH (c:Client {id: $id})
		OPTIONAL MATCH (c)-[:HAS_NOTE]->(n:Note)
		WITH c, c.id AS id, collect(n) AS notes
		FOREACH (note IN notes | DETACH DELETE note)
		DETACH DELETE c
		RETURN id
	`

	CreateNoteQuery = `
		MATCH (c:Client {id: $client_id})
		CREATE (c)-[:HAS_NOTE]->(n:Note)
		SET n = $props
		RETURN n.id AS id
	`

	GetNoteQuery = `
		MATCH (n:Note {id: $id})
		RETURN properties(n) AS note
	`

	// UpdateNoteQuery replaces every property in one SET and moves the
	// HAS_NOTE edge when the owning client changes. Nothing matches when the
	// note was edited since $expect_client and $expect_text were read.
	UpdateNoteQuery = `
		MATCH (n:Note {id: $id})
		WHERE n.client_id = $expect_client AND n.note_text = $expect_text
		MATCH (c:Client {id: $client_id})
		OPTIONAL MATCH (:Client)-[r:HAS_NOTE]->(n)
		DELETE r
		WITH DISTINCT n, c
		CREATE (c)-[:HAS_NOTE]->(n)
		SET n = $props
		RETURN n.id AS id
	`

	DeleteNoteQuery = `
		MATCH (n:Note {id: $id})
		WITH n, n.id AS id
		DETACH DELETE n
		RETURN id
	`

	ListNotesQuery = `
		MATCH (:Client {id: $client_id})-[:HAS_NOTE]->(n:Note)
		RETURN properties(n) AS note
		ORDER BY n.created_at DESC
	`
)
