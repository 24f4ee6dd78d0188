package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Spok95/furniture-db/internal/domain/materials"
	"github.com/Spok95/furniture-db/internal/domain/products"
	"github.com/Spok95/furniture-db/internal/export"
	"github.com/Spok95/furniture-db/internal/inventory"
)

const defaultTop = 10

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type statsResponse struct {
	Tables any   `json:"tables"`
	Total  int64 `json:"total"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Statistics(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var total int64
	for _, t := range st {
		total += t.Count
	}
	writeJSON(w, http.StatusOK, statsResponse{Tables: st, Total: total})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.queryInt(w, r, "limit", 0)
	if !ok {
		return
	}

	var (
		items []products.View
		err   error
	)
	if term := strings.TrimSpace(r.URL.Query().Get("search")); term != "" {
		items, err = s.store.SearchProducts(r.Context(), term)
	} else {
		items, err = s.store.ListProducts(r.Context(), limit)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var in products.NewProduct
	if !s.decodeBody(w, r, &in) {
		return
	}
	id, err := s.store.AddProduct(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/products/%d", id))
	writeJSON(w, http.StatusCreated, map[string]int64{"product_id": id})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	p, err := s.store.GetProduct(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		s.badRequest(w, "invalid json: "+err.Error())
		return
	}
	ch, err := products.ParseChanges(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.UpdateProduct(r.Context(), id, ch); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteProduct(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProductWorkshops(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	items, err := s.store.ProductWorkshops(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleProductionTime(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	t, err := s.store.ProductionTime(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCalculateMaterial(w http.ResponseWriter, r *http.Request) {
	var req materials.CalcRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	res, err := s.store.CalculateMaterial(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleProductTypes(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListProductTypes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleMaterialTypes(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListMaterialTypes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleWorkshops(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListWorkshops(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleByType(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ProductsByType(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAveragePrice(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.AveragePriceByType(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	n, ok := s.queryInt(w, r, "n", defaultTop)
	if !ok {
		return
	}
	items, err := s.store.TopExpensiveProducts(r.Context(), n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleProductsWorkshops(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ProductsWithWorkshops(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// handleExport отдаёт набор файлом; формат csv (по умолчанию) или xlsx.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	d, err := inventory.ParseDataset(chi.URLParam(r, "dataset"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		s.badRequest(w, "unsupported format "+format)
		return
	}

	rows, err := s.store.Rows(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch format {
	case "csv":
		err = export.EncodeCSV(&buf, rows)
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		err = export.EncodeXLSX(&buf, string(d), rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_export.%s"`, d, format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
