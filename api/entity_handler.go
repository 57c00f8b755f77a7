package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/research-lab-backend/errs"
	"github.com/rpupo63/research-lab-backend/models"
)

// maxBodySize bounds entity payloads (1MB).
const maxBodySize = 1 << 20

// serverOwnedKeys are never taken from a request body.
var serverOwnedKeys = []string{"id", "createdAt", "updatedAt"}

// entityHandler implements list, get, create, update and delete for one
// entity type. The per-entity handlers expose these under their routes.
type entityHandler[T any, P recordPtr[T]] struct {
	responder Responder
	logger    zerolog.Logger
	store     entityStore[T]
	entity    string
}

func newEntityHandler[T any, P recordPtr[T]](handlerName, entity string, store entityStore[T]) entityHandler[T, P] {
	logger := log.With().Str("handlerName", handlerName).Logger()

	return entityHandler[T, P]{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		entity:    entity,
	}
}

func (h entityHandler[T, P]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.store.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", h.entity, err))
			return
		}
		if rows == nil {
			rows = []T{}
		}
		for i := range rows {
			P(&rows[i]).Normalize()
		}

		h.responder.WriteJSON(w, http.StatusOK, rows)
	}
}

func (h entityHandler[T, P]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := models.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", h.entity, err))
			return
		}
		P(row).Normalize()

		h.responder.WriteJSON(w, http.StatusOK, row)
	}
}

func (h entityHandler[T, P]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := h.readFields(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		stripServerOwned(fields)

		var row T
		if err := decodeFields(fields, &row); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		P(&row).Normalize()

		if err := models.Validate(&row); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Add(r.Context(), &row); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", h.entity, err))
			return
		}

		h.logger.Info().
			Str("admin", adminFromContext(r.Context())).
			Uint("id", P(&row).Base().ID).
			Msgf("%s created", h.entity)

		h.responder.WriteJSON(w, http.StatusCreated, &row)
	}
}

// update merges the body over the stored row. Fields absent from the body
// keep their stored values; a field present in the body replaces the stored
// value whole, nested lists included.
func (h entityHandler[T, P]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := h.readFields(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := resolveUpdateID(fields, r.URL.Query().Get("id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		stripServerOwned(fields)

		existing, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", h.entity, err))
			return
		}

		merged, err := mergeFields(existing, fields)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var row T
		if err := decodeFields(merged, &row); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		*P(&row).Base() = *P(existing).Base()
		P(&row).Normalize()

		if err := models.Validate(&row); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Update(r.Context(), &row); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", h.entity, err))
			return
		}

		h.logger.Info().
			Str("admin", adminFromContext(r.Context())).
			Uint("id", id).
			Msgf("%s updated", h.entity)

		h.responder.WriteJSON(w, http.StatusOK, &row)
	}
}

func (h entityHandler[T, P]) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("id")
		if raw == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("id"))
			return
		}
		id, err := models.ParseID(raw)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", h.entity, err))
			return
		}

		h.logger.Info().
			Str("admin", adminFromContext(r.Context())).
			Uint("id", id).
			Msgf("%s deleted", h.entity)

		h.responder.WriteJSON(w, http.StatusOK, DeleteResponse{
			Success: true,
			Message: fmt.Sprintf("%s deleted successfully", capitalize(h.entity)),
		})
	}
}

// readFields reads the body as a JSON object keyed by field name.
func (h entityHandler[T, P]) readFields(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, errs.NewMalformedPayloadError(h.entity, err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return nil, errs.NewInvalidJSONError(err)
	}
	if fields == nil {
		return nil, errs.NewInvalidJSONError(fmt.Errorf("body must be a JSON object"))
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, errs.NewInvalidJSONError(fmt.Errorf("unexpected data after JSON object"))
	}
	return fields, nil
}

// mergeFields lays fields over the stored row's JSON form, one top-level key
// at a time. Keys match case-insensitively, as encoding/json does.
func mergeFields(stored any, fields map[string]json.RawMessage) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("encode stored row", err)
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, errs.NewInternalErrorWithCause("encode stored row", err)
	}

	for key, value := range fields {
		for name := range merged {
			if strings.EqualFold(name, key) {
				delete(merged, name)
			}
		}
		merged[key] = value
	}
	return merged, nil
}

func decodeFields(fields map[string]json.RawMessage, dst any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return errs.NewInvalidJSONError(err)
	}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(dst); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// stripServerOwned drops id and timestamps. encoding/json matches keys
// case-insensitively, so the keys are compared the same way.
func stripServerOwned(fields map[string]json.RawMessage) {
	for key := range fields {
		for _, owned := range serverOwnedKeys {
			if strings.EqualFold(key, owned) {
				delete(fields, key)
			}
		}
	}
}

// resolveUpdateID takes the id from the body, falling back to the query.
func resolveUpdateID(fields map[string]json.RawMessage, queryID string) (uint, error) {
	var bodyID uint
	for key, raw := range fields {
		if !strings.EqualFold(key, "id") || string(bytes.TrimSpace(raw)) == "null" {
			continue
		}
		var ref models.RefID
		if err := json.Unmarshal(raw, &ref); err != nil {
			return 0, errs.NewInvalidIDError(strings.Trim(string(raw), `"`))
		}
		bodyID = uint(ref)
	}

	if queryID == "" {
		if bodyID == 0 {
			return 0, errs.NewMissingRequiredFieldError("id")
		}
		return bodyID, nil
	}

	id, err := models.ParseID(queryID)
	if err != nil {
		return 0, err
	}
	if bodyID != 0 && bodyID != id {
		return 0, errs.NewInvalidFieldError("id", fmt.Sprintf("body id %d does not match query id %d", bodyID, id))
	}
	return id, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
