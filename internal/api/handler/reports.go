package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/commerce-insights-api/internal/domain"
	"github.com/vfg2006/commerce-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/commerce-insights-api/pkg/apiErrors"
)

type RefreshReportResponse struct {
	GeneratedAt time.Time `json:"generated_at"`
	OrderCount  int       `json:"order_count"`
	BestSeller  string    `json:"best_seller,omitempty"`
}

// GetSalesReport retorna a visão por produto do último relatório
func GetSalesReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := latestReport(w, r, service)
		if !ok {
			return
		}

		writeJSON(w, report.Sales)
	}
}

// GetSponsorsReport retorna a visão por código de padrinho do último relatório
func GetSponsorsReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := latestReport(w, r, service)
		if !ok {
			return
		}

		writeJSON(w, map[string]any{
			"sponsors":    report.Sponsors,
			"best_seller": report.BestSeller,
		})
	}
}

// GetDailyReport retorna a visão por dia do último relatório
func GetDailyReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := latestReport(w, r, service)
		if !ok {
			return
		}

		writeJSON(w, report.Daily)
	}
}

// RefreshReport executa o pipeline completo de forma síncrona
func RefreshReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.GenerateReport(r.Context())
		if err != nil {
			logrus.WithError(err).Error("Erro ao gerar relatório sob demanda")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao gerar relatório", nil)
			return
		}

		writeJSON(w, RefreshReportResponse{
			GeneratedAt: report.GeneratedAt,
			OrderCount:  report.OrderCount,
			BestSeller:  report.BestSeller,
		})
	}
}

func latestReport(w http.ResponseWriter, r *http.Request, service reporting.Reporter) (*domain.Report, bool) {
	report, err := service.Latest(r.Context())
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar o último relatório")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar o relatório", nil)
		return nil, false
	}

	if report == nil {
		apiErrors.WriteError(w, apiErrors.ErrReportNotAvailable, "Nenhum relatório disponível ainda", nil)
		return nil, false
	}

	return report, true
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}
