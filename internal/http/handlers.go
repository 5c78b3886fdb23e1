package http

import (
	"context"
	"net/http"

	"fatture/internal/core"
	"fatture/internal/log"
)

func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.ledger.GetAllInvoices(ctx))
	case http.MethodPost:
		var draft core.Invoice
		if err := readJSON(w, r, &draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid invoice payload")
			return
		}
		stored, err := s.ledger.SaveInvoice(ctx, draft)
		if err != nil {
			s.logger.ErrorContext(ctx, "Invoice save failed", log.FieldError, err)
			writeError(w, http.StatusInternalServerError, "could not save invoice")
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleNextInvoiceNumber(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	writeJSON(w, http.StatusOK, map[string]string{
		"invoiceNumber": s.ledger.NextInvoiceNumber(ctx),
	})
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.ledger.GetAllCustomers(ctx))
	case http.MethodPost:
		var c core.Customer
		if err := readJSON(w, r, &c); err != nil {
			writeError(w, http.StatusBadRequest, "invalid customer payload")
			return
		}
		stored, err := s.ledger.SaveCustomer(ctx, c)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stored)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMonthlyAnalytics(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	year, month := parseYearMonth(r)
	writeJSON(w, http.StatusOK, s.ledger.GetMonthlyAnalytics(ctx, year, month))
}

func (s *Server) handleYearlyAnalytics(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	year, _ := parseYearMonth(r)
	writeJSON(w, http.StatusOK, s.ledger.GetYearlyAnalytics(ctx, year))
}

func (s *Server) handleCurrentMonthAnalytics(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	writeJSON(w, http.StatusOK, s.ledger.GetCurrentMonthAnalytics(ctx))
}

func (s *Server) handleCurrentYearAnalytics(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	writeJSON(w, http.StatusOK, s.ledger.GetCurrentYearAnalytics(ctx))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	writeJSON(w, http.StatusOK, s.ledger.Summary(ctx))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.ledger.Settings(ctx))
	case http.MethodPut:
		var settings core.Settings
		if err := readJSON(w, r, &settings); err != nil {
			writeError(w, http.StatusBadRequest, "invalid settings payload")
			return
		}
		if err := s.ledger.SaveSettings(ctx, settings); err != nil {
			s.logger.ErrorContext(ctx, "Settings save failed", log.FieldError, err)
			writeError(w, http.StatusInternalServerError, "could not save settings")
			return
		}
		writeJSON(w, http.StatusOK, settings)
	default:
		w.Header().Set("Allow", "GET, PUT")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	snap := s.ledger.Export(ctx)
	w.Header().Set("Content-Disposition",
		`attachment; filename="fatture-backup-`+snap.ExportDate.Format("2006-01-02")+`.json"`)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var snap core.Snapshot
	if err := readJSON(w, r, &snap); err != nil {
		writeError(w, http.StatusBadRequest, "invalid snapshot payload")
		return
	}
	if err := s.ledger.Import(ctx, snap); err != nil {
		s.logger.ErrorContext(ctx, "Import failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not import snapshot")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"imported": true})
}

// handleData serves DELETE /api/data, wiping every collection.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := s.ledger.ClearAll(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Clear failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not clear data")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
