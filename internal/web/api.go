package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mycolab/sporely/internal/run"
	"github.com/mycolab/sporely/internal/settings"
	"github.com/mycolab/sporely/internal/status"
	"github.com/mycolab/sporely/internal/steril"
)

type errorResponse struct {
	Error string `json:"error"`
}

type computeRequest struct {
	PresetID      string `json:"preset_id"`
	AltitudeFeet  int    `json:"altitude_feet"`
	Quantity      int    `json:"quantity"`
	CustomMinutes int    `json:"custom_minutes"`
	UseCustom     bool   `json:"use_custom"`
}

type computeResponse struct {
	PresetID           string `json:"preset_id"`
	PSI                int    `json:"psi"`
	Minutes            int    `json:"minutes"`
	AltitudeAdjustment int    `json:"altitude_adjustment"`
	Pasteurization     bool   `json:"pasteurization"`
	Advice             string `json:"advice"`
}

type presetJSON struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	BasePSI           int    `json:"base_psi"`
	BaseMinutes       int    `json:"base_minutes"`
	PerUnitAdditional int    `json:"per_unit_additional"`
	MaxMinutes        int    `json:"max_minutes"`
	Notes             string `json:"notes"`
}

type addItemRequest struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	RefID    string `json:"ref_id"`
	Category string `json:"category"`
}

type startTimerRequest struct {
	Minutes int `json:"minutes"`
}

type timerStateResponse struct {
	Running          bool `json:"running"`
	Paused           bool `json:"paused"`
	TotalSeconds     int  `json:"total_seconds"`
	RemainingSeconds int  `json:"remaining_seconds"`
}

type settingsRequest struct {
	TimerSound   *string  `json:"timer_sound"`
	TimerVolume  *float64 `json:"timer_volume"`
	AltitudeFeet *int     `json:"altitude_feet"`
}

type settingsResponse struct {
	TimerSound   string  `json:"timer_sound"`
	TimerVolume  float64 `json:"timer_volume"`
	AltitudeFeet int     `json:"altitude_feet"`
}

type spawnJSON struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	SpawnType           string `json:"spawn_type"`
	Quantity            int    `json:"quantity"`
	Status              string `json:"status"`
	SterilizationDate   string `json:"sterilization_date,omitempty"`
	SterilizationMethod string `json:"sterilization_method,omitempty"`
}

type inventoryJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func timerResponse(snap status.Snapshot) timerStateResponse {
	return timerStateResponse{
		Running:          snap.Timer.Running,
		Paused:           snap.Timer.Paused,
		TotalSeconds:     snap.Timer.TotalSeconds,
		RemainingSeconds: snap.Timer.RemainingSeconds,
	}
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	presets := steril.Presets()
	out := make([]presetJSON, 0, len(presets))
	for _, p := range presets {
		out = append(out, presetJSON{
			ID:                p.ID,
			Name:              p.Name,
			Category:          string(p.Category),
			BasePSI:           p.BasePSI,
			BaseMinutes:       p.BaseMinutes,
			PerUnitAdditional: p.PerUnitAdditional,
			MaxMinutes:        p.MaxMinutes,
			Notes:             p.Notes,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req computeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.ctl.Compute(req.PresetID, req.AltitudeFeet, req.Quantity,
		req.CustomMinutes, req.UseCustom)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, computeResponse{
		PresetID:           req.PresetID,
		PSI:                res.PSI,
		Minutes:            res.Minutes,
		AltitudeAdjustment: res.AltitudeAdjustment,
		Pasteurization:     res.IsPasteurization,
		Advice:             res.Advice(),
	})
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, itemsJSON(s.tracker.Snapshot().Items))
	case http.MethodPost:
		var req addItemRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		kind := run.Kind(req.Kind)
		switch kind {
		case run.KindPreparedSpawn, run.KindInventory, run.KindCustom:
		case "":
			kind = run.KindCustom
		default:
			writeError(w, http.StatusBadRequest, "unknown item kind")
			return
		}

		suggested, _ := steril.SuggestPreset(req.Name, req.Category)
		item, err := s.ctl.AddItem(run.Item{
			Kind:            kind,
			Name:            req.Name,
			Quantity:        req.Quantity,
			RefID:           req.RefID,
			SuggestedPreset: suggested,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, itemJSON(item))
	default:
		writeError(w, http.StatusMethodNotAllowed, "GET or POST required")
	}
}

func (s *Server) handleItemByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "DELETE required")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/items/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "item id required")
		return
	}
	if err := s.ctl.RemoveItem(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, itemsJSON(s.tracker.Snapshot().Items))
}

func (s *Server) handleSpawn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	spawn, err := s.ctl.ListPreparedSpawn(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]spawnJSON, 0, len(spawn))
	for _, ps := range spawn {
		sj := spawnJSON{
			ID:                  ps.ID,
			Name:                ps.Name,
			SpawnType:           ps.SpawnType,
			Quantity:            ps.Quantity,
			Status:              ps.Status,
			SterilizationMethod: ps.SterilizationMethod,
		}
		if ps.SterilizationDate != nil {
			sj.SterilizationDate = ps.SterilizationDate.UTC().Format(time.RFC3339)
		}
		out = append(out, sj)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	items, err := s.ctl.ListInventory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]inventoryJSON, 0, len(items))
	for _, it := range items {
		out = append(out, inventoryJSON{
			ID:       it.ID,
			Name:     it.Name,
			Category: it.Category,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, settingsJSON(s.ctl.Settings()))
	case http.MethodPatch:
		var req settingsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := s.ctl.UpdateSettings(settings.Partial{
			TimerSound:   req.TimerSound,
			TimerVolume:  req.TimerVolume,
			AltitudeFeet: req.AltitudeFeet,
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, settingsJSON(updated))
	default:
		writeError(w, http.StatusMethodNotAllowed, "GET or PATCH required")
	}
}

func settingsJSON(s settings.Settings) settingsResponse {
	return settingsResponse{
		TimerSound:   s.TimerSound,
		TimerVolume:  s.TimerVolume,
		AltitudeFeet: s.AltitudeFeet,
	}
}

func itemJSON(it run.Item) status.ItemJSON {
	return status.ItemJSON{
		ID:              it.ID,
		Kind:            string(it.Kind),
		Name:            it.Name,
		Quantity:        it.Quantity,
		RefID:           it.RefID,
		SuggestedPreset: it.SuggestedPreset,
	}
}

func itemsJSON(items []run.Item) []status.ItemJSON {
	out := make([]status.ItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, itemJSON(it))
	}
	return out
}
