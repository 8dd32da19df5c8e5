package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/piwi3910/slabcut/internal/engine"
	"github.com/piwi3910/slabcut/internal/export"
	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/project"
	"github.com/piwi3910/slabcut/internal/scene"
)

// CutlistRequest asks for the cutlist of a scene.
// Settings win over Preset, which wins over the server defaults.
type CutlistRequest struct {
	Scene    scene.Document         `json:"scene"`
	Settings *model.Settings        `json:"settings,omitempty"`
	Preset   string                 `json:"preset,omitempty"`
	Library  *model.MaterialLibrary `json:"library,omitempty"`
}

// CutlistResponse carries the report and the scene materials whose stock
// table came from a library.
type CutlistResponse struct {
	Report           model.Report `json:"report"`
	AppliedMaterials []string     `json:"applied_materials"`
}

// PartUpdateRequest applies a part update to a scene.
type PartUpdateRequest struct {
	Scene  scene.Document   `json:"scene"`
	Update model.PartUpdate `json:"update"`
}

// GroupUpdateRequest applies a group update to a scene.
type GroupUpdateRequest struct {
	Scene  scene.Document    `json:"scene"`
	Update model.GroupUpdate `json:"update"`
}

// UpdateResponse returns the updated scene with the command outcome.
type UpdateResponse struct {
	Scene  scene.Document     `json:"scene"`
	Result model.UpdateResult `json:"result"`
}

func (s *Server) handleCutlist(w http.ResponseWriter, r *http.Request) {
	var req CutlistRequest
	if !decode(w, r, &req) {
		return
	}

	format := export.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		format = export.Format(f)
	}
	switch format {
	case export.FormatJSON, export.FormatCSV, export.FormatXLSX, export.FormatPDF:
	default:
		jsonError(w, fmt.Sprintf("unsupported format: %s", format), http.StatusBadRequest)
		return
	}

	settings, err := s.resolveSettings(req)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := req.Scene.Build()
	if err != nil {
		jsonError(w, "invalid scene: "+err.Error(), http.StatusBadRequest)
		return
	}

	library := model.NewMaterialLibrary()
	library.Merge(s.library)
	if req.Library != nil {
		for _, e := range req.Library.Materials {
			library.Upsert(e)
		}
	}

	s.mu.Lock()
	applied := project.ApplyMaterialLibrary(m, library)
	report := engine.New(settings, s.log, s.metrics).Generate(m)
	s.mu.Unlock()

	if applied == nil {
		applied = []string{}
	}

	switch format {
	case export.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", attachment(report, ".csv"))
		if err := export.WriteCSV(w, report); err != nil {
			s.log.Error("failed to write csv", zap.Error(err))
		}
	case export.FormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", attachment(report, ".xlsx"))
		if err := export.WriteXLSX(w, report); err != nil {
			s.log.Error("failed to write xlsx", zap.Error(err))
		}
	case export.FormatPDF:
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", attachment(report, ".pdf"))
		if err := export.WritePDF(w, report); err != nil {
			s.log.Error("failed to write pdf", zap.Error(err))
		}
	default:
		writeJSON(w, http.StatusOK, CutlistResponse{Report: report, AppliedMaterials: applied})
	}
}

func (s *Server) handlePartUpdate(w http.ResponseWriter, r *http.Request) {
	var req PartUpdateRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := req.Scene.Build()
	if err != nil {
		jsonError(w, "invalid scene: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	result := engine.New(s.settings, s.log, s.metrics).UpdatePart(m, req.Update)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, UpdateResponse{Scene: scene.NewDocument(m), Result: result})
}

func (s *Server) handleGroupUpdate(w http.ResponseWriter, r *http.Request) {
	var req GroupUpdateRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := req.Scene.Build()
	if err != nil {
		jsonError(w, "invalid scene: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	result := engine.New(s.settings, s.log, s.metrics).UpdateGroup(m, req.Update)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, UpdateResponse{Scene: scene.NewDocument(m), Result: result})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.presets)
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.library)
}

func (s *Server) resolveSettings(req CutlistRequest) (model.Settings, error) {
	if req.Settings != nil {
		return *req.Settings, nil
	}
	if req.Preset != "" {
		p, ok := model.FindPreset(s.presets, req.Preset)
		if !ok {
			return model.Settings{}, fmt.Errorf("unknown preset: %s", req.Preset)
		}
		return p.Settings, nil
	}
	return s.settings, nil
}

// decode reads a JSON body into v and answers 400 when it cannot.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func attachment(report model.Report, ext string) string {
	return fmt.Sprintf(`attachment; filename="%s%s"`, export.BaseName(report.Filename), ext)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
