package httpapi

import (
	"io"
	"net/http"
	"time"

	"cashflow/internal/core"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- transactions ---

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.Transactions())
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var tx core.Transaction
	if err := decodeBody(r, &tx); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	created, err := s.svc.AddTransaction(r.Context(), tx)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request) {
	var fields core.Transaction
	if err := decodeBody(r, &fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	updated, err := s.svc.EditTransaction(r.Context(), r.PathValue("id"), fields)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- aggregation ---

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseInterval(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid interval: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.svc.Summary(start, end))
}

// --- budgets ---

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	monthKey := r.URL.Query().Get("month")
	if monthKey == "" {
		monthKey = core.MonthKey(time.Now())
	}
	overview, err := s.svc.BudgetStatus(monthKey)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category     string  `json:"category"`
		MonthlyLimit float64 `json:"monthlyLimit"`
		Month        string  `json:"month"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	budget, err := s.svc.SetBudget(r.Context(), req.Category, req.MonthlyLimit, req.Month)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// --- goals ---

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.Goals())
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var goal core.FinancialGoal
	if err := decodeBody(r, &goal); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	created, err := s.svc.AddGoal(r.Context(), goal)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentAmount float64 `json:"currentAmount"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	updated, err := s.svc.UpdateGoalProgress(r.Context(), r.PathValue("id"), req.CurrentAmount)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteGoal(r.Context(), r.PathValue("id")); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- import / export ---

func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.svc.PreviewImport(string(data)))
}

// handleImportCommit re-parses the submitted file and commits it in one
// step. The gate still applies: any row error blocks the whole batch.
func (s *Server) handleImportCommit(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	result := s.svc.PreviewImport(string(data))
	n, err := s.svc.CommitImport(r.Context(), result)
	if err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  err.Error(),
			"errors": result.Errors,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"imported": n})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseInterval(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid interval: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cashflow-report-`+core.MonthKey(start)+`.csv"`)
	_, _ = io.WriteString(w, s.svc.ExportCSV(start, end))
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cashflow-template.csv"`)
	_, _ = io.WriteString(w, s.svc.Template())
}

// --- backup / restore ---

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	raw, err := s.svc.Backup(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="cashflow-backup-`+time.Now().Format("2006-01-02")+`.json"`)
	_, _ = w.Write(raw)
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	if err := s.svc.RestoreBackup(r.Context(), data); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

// --- user slot ---

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.svc.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusNotFound, "no user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	user, err := s.svc.CreateUser(r.Context(), req.Name)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	s.svc.DeleteUser(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.svc.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
