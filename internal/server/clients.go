package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agenthands/carelens/internal/core/model"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

var errInvalidDate = errors.New("date_of_birth must be YYYY-MM-DD")

// clientPayload is the writable part of a client as it travels over HTTP.
type clientPayload struct {
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	DateOfBirth            string `json:"date_of_birth"`
	Gender                 string `json:"gender"`
	Address                string `json:"address"`
	ContactNumber          string `json:"contact_number"`
	CareNotes              string `json:"care_notes"`
	EmergencyContactName   string `json:"emergency_contact_name"`
	EmergencyContactNumber string `json:"emergency_contact_number"`
	CareStatus             string `json:"care_status"`
	AssignedCaregiver      string `json:"assigned_caregiver"`
}

type clientResponse struct {
	ID string `json:"id"`
	clientPayload
	Age       *int      `json:"age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func payloadFrom(c model.Client) clientPayload {
	p := clientPayload{
		FirstName:              c.FirstName,
		LastName:               c.LastName,
		Gender:                 string(c.Gender),
		Address:                c.Address,
		ContactNumber:          c.ContactNumber,
		CareNotes:              c.CareNotes,
		EmergencyContactName:   c.EmergencyContactName,
		EmergencyContactNumber: c.EmergencyContactNumber,
		CareStatus:             string(c.CareStatus),
		AssignedCaregiver:      c.AssignedCaregiver,
	}
	if !c.DateOfBirth.IsZero() {
		p.DateOfBirth = c.DateOfBirth.Format(dateLayout)
	}
	return p
}

func (p clientPayload) client(id string) (model.Client, error) {
	c := model.Client{
		ID:                     id,
		FirstName:              p.FirstName,
		LastName:               p.LastName,
		Gender:                 model.Gender(p.Gender),
		Address:                p.Address,
		ContactNumber:          p.ContactNumber,
		CareNotes:              p.CareNotes,
		EmergencyContactName:   p.EmergencyContactName,
		EmergencyContactNumber: p.EmergencyContactNumber,
		CareStatus:             model.CareStatus(p.CareStatus),
		AssignedCaregiver:      p.AssignedCaregiver,
	}
	if p.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, p.DateOfBirth)
		if err != nil {
			return model.Client{}, fmt.Errorf("%w: %q", errInvalidDate, p.DateOfBirth)
		}
		c.DateOfBirth = dob
	}
	return c, nil
}

func responseFrom(c model.Client, now time.Time) clientResponse {
	r := clientResponse{
		ID:            c.ID,
		clientPayload: payloadFrom(c),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if age := c.Age(now); age >= 0 {
		r.Age = &age
	}
	return r
}

func (s *Server) ListClients(c *gin.Context) {
	clients, err := s.Clients.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	now := time.Now()
	out := make([]clientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, responseFrom(cl, now))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) CreateClient(c *gin.Context) {
	var p clientPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cl, err := p.client("")
	if err != nil {
		s.fail(c, err)
		return
	}
	created, err := s.Clients.Create(c.Request.Context(), cl)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, responseFrom(created, time.Now()))
}

func (s *Server) GetClient(c *gin.Context) {
	cl, err := s.Clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, responseFrom(cl, time.Now()))
}

// UpdateClient decodes the body over the stored client, so absent fields
// keep their values.
func (s *Server) UpdateClient(c *gin.Context) {
	ctx := c.Request.Context()
	existing, err := s.Clients.Get(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	p := payloadFrom(existing)
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cl, err := p.client(existing.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	updated, err := s.Clients.Update(ctx, cl)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, responseFrom(updated, time.Now()))
}

func (s *Server) DeleteClient(c *gin.Context) {
	if err := s.Clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListClientNotes(c *gin.Context) {
	notes, err := s.Notes.ListForClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}
