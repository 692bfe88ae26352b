package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ProjectDTO struct {
	ID               string  `json:"id,omitempty"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Status           string  `json:"status"`
	Department       string  `json:"department,omitempty"`
	Budget           float64 `json:"budget"`
	Spent            float64 `json:"spent"`
	BurnRate         float64 `json:"burnRate"`
	MandaysAllocated float64 `json:"mandaysAllocated"`
	MandaysConsumed  float64 `json:"mandaysConsumed"`
	StartDate        string  `json:"startDate,omitempty"`
	EndDate          string  `json:"endDate,omitempty"`
	CreatedAt        string  `json:"createdAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projects, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, ToDTO(p))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["projectId"]

	project, err := h.service.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(project)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new project")
	w.Header().Set("Content-Type", "application/json")

	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	project, err := FromDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), project)
	if errors.Is(err, ErrInvalid) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["projectId"]

	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	project, err := FromDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	project.ID = id

	updated, err := h.service.Update(r.Context(), project)
	if errors.Is(err, ErrInvalid) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["projectId"]

	err := h.service.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

const dtoDateLayout = "2006-01-02"

func ToDTO(project Project) ProjectDTO {
	dto := ProjectDTO{
		ID:               project.ID,
		Name:             project.Name,
		Description:      project.Description,
		Status:           string(project.Status),
		Department:       project.Department,
		Budget:           project.Budget,
		Spent:            project.Spent,
		BurnRate:         project.BurnRate,
		MandaysAllocated: project.MandaysAllocated,
		MandaysConsumed:  project.MandaysConsumed,
	}
	if !project.StartDate.IsZero() {
		dto.StartDate = project.StartDate.Format(dtoDateLayout)
	}
	if !project.EndDate.IsZero() {
		dto.EndDate = project.EndDate.Format(dtoDateLayout)
	}
	if !project.CreatedAt.IsZero() {
		dto.CreatedAt = project.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func FromDTO(dto ProjectDTO) (Project, error) {
	project := Project{
		ID:               dto.ID,
		Name:             dto.Name,
		Description:      dto.Description,
		Status:           Status(dto.Status),
		Department:       dto.Department,
		Budget:           dto.Budget,
		Spent:            dto.Spent,
		BurnRate:         dto.BurnRate,
		MandaysAllocated: dto.MandaysAllocated,
		MandaysConsumed:  dto.MandaysConsumed,
	}
	if dto.StartDate != "" {
		parsed, err := time.Parse(dtoDateLayout, dto.StartDate)
		if err != nil {
			return Project{}, fmt.Errorf("invalid start date: %w", err)
		}
		project.StartDate = parsed
	}
	if dto.EndDate != "" {
		parsed, err := time.Parse(dtoDateLayout, dto.EndDate)
		if err != nil {
			return Project{}, fmt.Errorf("invalid end date: %w", err)
		}
		project.EndDate = parsed
	}
	return project, nil
}
