package venues

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/citynights/server/internal/domain/ids"
	"github.com/citynights/server/internal/sanitize"
)

type Service struct {
	repo     Repository
	codec    *Codec
	validate *validator.Validate
}

func NewService(repo Repository, codec *Codec) *Service {
	return &Service{repo: repo, codec: codec, validate: validator.New()}
}

// createInput is the typed view of a create payload used for validation; the
// full payload flows through the codec untouched.
type createInput struct {
	Name      string   `validate:"required,min=1,max=200"`
	Country   string   `validate:"required_with=City"`
	City      string   `validate:"required_with=Country"`
	Longitude *float64 `validate:"omitempty,min=-180,max=180"`
	Latitude  *float64 `validate:"omitempty,min=-90,max=90"`
}

// ValidationError marks a client payload rejection.
type ValidationError struct {
	Err error
}

func (e ValidationError) Error() string { return e.Err.Error() }
func (e ValidationError) Unwrap() error { return e.Err }

func (s *Service) Create(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if err := s.validate.Struct(extractCreateInput(payload)); err != nil {
		return nil, ValidationError{Err: err}
	}

	payload = sanitizePayload(payload)

	doc, err := s.codec.Serialize(payload)
	if err != nil {
		return nil, ValidationError{Err: err}
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint venue id: %w", err)
	}
	doc[idField] = id
	assignImageIDs(doc)

	stored, err := s.repo.Create(ctx, id, doc)
	if err != nil {
		return nil, err
	}
	return s.codec.Deserialize(stored.Doc)
}

func (s *Service) Get(ctx context.Context, id string) (map[string]any, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.codec.Deserialize(stored.Doc)
}

type ListView struct {
	Venues     []map[string]any
	NextCursor string
}

func (s *Service) List(ctx context.Context, filters Filters, pagination Pagination) (ListView, error) {
	result, err := s.repo.List(ctx, filters, pagination)
	if err != nil {
		return ListView{}, err
	}

	views := make([]map[string]any, 0, len(result.Venues))
	for _, stored := range result.Venues {
		view, err := s.codec.Deserialize(stored.Doc)
		if err != nil {
			return ListView{}, err
		}
		views = append(views, view)
	}
	return ListView{Venues: views, NextCursor: result.NextCursor}, nil
}

// Update applies a partial payload. The client cannot move a venue to a new
// id, so any submitted id is dropped before serialization.
func (s *Service) Update(ctx context.Context, id string, payload map[string]any) (map[string]any, error) {
	payload = sanitizePayload(payload)
	delete(payload, clientIDField)
	delete(payload, idField)

	partial, err := s.codec.Serialize(payload)
	if err != nil {
		return nil, ValidationError{Err: err}
	}
	assignImageIDs(partial)

	stored, err := s.repo.Update(ctx, id, partial)
	if err != nil {
		return nil, err
	}
	return s.codec.Deserialize(stored.Doc)
}

// SetFacebookEvents replaces the venue's facebook event list with the
// incoming one, merging dates from stored events by facebookId.
func (s *Service) SetFacebookEvents(ctx context.Context, id string, incoming []map[string]any) (map[string]any, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := MergeFacebookEvents(facebookEvents(stored.Doc), incoming)
	events := make([]any, len(merged))
	for i, event := range merged {
		events[i] = event
	}

	updated, err := s.repo.Update(ctx, id, map[string]any{"facebookEvents": events})
	if err != nil {
		return nil, err
	}
	return s.codec.Deserialize(updated.Doc)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func facebookEvents(doc map[string]any) []map[string]any {
	raw, _ := doc["facebookEvents"].([]any)
	events := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if event, ok := item.(map[string]any); ok {
			events = append(events, event)
		}
	}
	return events
}

func extractCreateInput(payload map[string]any) createInput {
	input := createInput{}
	input.Name, _ = stringValue(payload, "name")
	if location, ok := payload["location"].(map[string]any); ok {
		input.Country, _ = stringValue(location, "country")
		input.City, _ = stringValue(location, "city")
		if coords, ok := location["coordinates"].(map[string]any); ok {
			if lon, ok := numberValue(coords, "longitude"); ok {
				input.Longitude = &lon
			}
			if lat, ok := numberValue(coords, "latitude"); ok {
				input.Latitude = &lat
			}
		}
	}
	return input
}

// sanitizePayload strips unsafe HTML from the free-text fields. Returns a
// copy; the caller's payload is never mutated.
func sanitizePayload(payload map[string]any) map[string]any {
	out := deepCopyMap(payload)
	if name, ok := stringValue(out, "name"); ok {
		out["name"] = sanitize.Text(name)
	}
	if description, ok := stringValue(out, "description"); ok {
		out["description"] = sanitize.HTML(description)
	}
	return out
}

// assignImageIDs gives every image without an identifier a fresh one.
func assignImageIDs(doc map[string]any) {
	images, ok := doc["images"].([]any)
	if !ok {
		return
	}
	for _, item := range images {
		img, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, has := img[idField]; !has {
			img[idField] = uuid.New().String()
		}
	}
}

// ParseFilters extracts list filters and pagination from query parameters.
func ParseFilters(values url.Values) (Filters, Pagination, error) {
	filters := Filters{
		Country: strings.TrimSpace(values.Get("country")),
		City:    strings.TrimSpace(values.Get("city")),
		Query:   strings.TrimSpace(values.Get("q")),
	}
	pagination := Pagination{Limit: 50}

	rawLimit := strings.TrimSpace(values.Get("limit"))
	if rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			return filters, pagination, FilterError{Field: "limit", Message: "must be a number"}
		}
		if parsed < 1 || parsed > 200 {
			return filters, pagination, FilterError{Field: "limit", Message: "must be between 1 and 200"}
		}
		pagination.Limit = parsed
	}

	pagination.After = strings.TrimSpace(values.Get("after"))
	return filters, pagination, nil
}

type FilterError struct {
	Field   string
	Message string
}

func (e FilterError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
