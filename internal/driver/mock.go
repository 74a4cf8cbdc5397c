package driver

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MockDriver records queries and answers them from Respond, or from
// MockResult and Err when Respond is nil.
type MockDriver struct {
	MockResult neo4j.EagerResult
	Err        error
	Respond    func(query string, params map[string]interface{}) (neo4j.EagerResult, error)

	mu       sync.Mutex
	executed []Executed
}

type Executed struct {
	Query  string
	Params map[string]interface{}
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.mu.Lock()
	m.executed = append(m.executed, Executed{Query: query, Params: params})
	m.mu.Unlock()

	if m.Respond != nil {
		return m.Respond(query, params)
	}
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	for _, q := range IndexQueries {
		if _, err := m.ExecuteQuery(ctx, q, nil); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Executed() []Executed {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Executed(nil), m.executed...)
}

// Records builds an EagerResult with one record per row, each holding a
// single value under key.
func Records(key string, rows ...interface{}) neo4j.EagerResult {
	result := neo4j.EagerResult{Keys: []string{key}}
	for _, row := range rows {
		result.Records = append(result.Records, &neo4j.Record{
			Keys:   []string{key},
			Values: []interface{}{row},
		})
	}
	return result
}
