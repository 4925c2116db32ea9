package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/vfg2006/commerce-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/commerce-insights-api/internal/domain"
)

const (
	salesReportsTable = "sales_reports"

	idLength     = 6
	idCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// ReportRepository persiste os instantâneos de relatório gerados pelo
// pipeline, um por data de relatório.
type ReportRepository interface {
	SaveOrUpdate(ctx context.Context, report *domain.Report) error
	GetLatest(ctx context.Context) (*domain.Report, error)
}

type reportRepository struct {
	conn postgres.Queryer
}

func NewReportRepository(conn postgres.Queryer) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

// SaveOrUpdate grava o instantâneo do dia, substituindo o anterior da
// mesma data. As três visões agregadas vão como colunas JSON.
func (r *reportRepository) SaveOrUpdate(ctx context.Context, report *domain.Report) error {
	salesJSON, err := json.Marshal(report.Sales)
	if err != nil {
		return fmt.Errorf("erro ao serializar o resumo de vendas: %w", err)
	}

	sponsorsJSON, err := json.Marshal(report.Sponsors)
	if err != nil {
		return fmt.Errorf("erro ao serializar as vendas por padrinho: %w", err)
	}

	dailyJSON, err := json.Marshal(report.Daily)
	if err != nil {
		return fmt.Errorf("erro ao serializar as vendas por dia: %w", err)
	}

	id, err := gonanoid.Generate(idCharacters, idLength)
	if err != nil {
		return fmt.Errorf("erro ao gerar o id do relatório: %w", err)
	}

	now := time.Now()

	query, args, err := squirrel.
		Insert(salesReportsTable).
		Columns(
			"id", "report_date", "generated_at", "order_count",
			"best_seller", "sales_metrics", "sponsor_metrics", "daily_metrics",
			"created_at", "updated_at",
		).
		Values(
			id,
			report.GeneratedAt.Format(time.DateOnly),
			report.GeneratedAt,
			report.OrderCount,
			report.BestSeller,
			salesJSON,
			sponsorsJSON,
			dailyJSON,
			now,
			now,
		).
		Suffix(`ON CONFLICT (report_date) DO UPDATE SET
			generated_at = EXCLUDED.generated_at,
			order_count = EXCLUDED.order_count,
			best_seller = EXCLUDED.best_seller,
			sales_metrics = EXCLUDED.sales_metrics,
			sponsor_metrics = EXCLUDED.sponsor_metrics,
			daily_metrics = EXCLUDED.daily_metrics,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar o relatório: %w", err)
	}

	return nil
}

// GetLatest retorna o instantâneo mais recente, ou nil quando nenhum
// relatório foi persistido ainda.
func (r *reportRepository) GetLatest(ctx context.Context) (*domain.Report, error) {
	query, args, err := squirrel.
		Select("generated_at", "order_count", "best_seller", "sales_metrics", "sponsor_metrics", "daily_metrics").
		From(salesReportsTable).
		OrderBy("generated_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(ctx, query, args...)

	var (
		report       domain.Report
		salesJSON    []byte
		sponsorsJSON []byte
		dailyJSON    []byte
	)

	err = row.Scan(
		&report.GeneratedAt,
		&report.OrderCount,
		&report.BestSeller,
		&salesJSON,
		&sponsorsJSON,
		&dailyJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear o relatório: %w", err)
	}

	if err := json.Unmarshal(salesJSON, &report.Sales); err != nil {
		return nil, fmt.Errorf("erro ao desserializar o resumo de vendas: %w", err)
	}
	if err := json.Unmarshal(sponsorsJSON, &report.Sponsors); err != nil {
		return nil, fmt.Errorf("erro ao desserializar as vendas por padrinho: %w", err)
	}
	if err := json.Unmarshal(dailyJSON, &report.Daily); err != nil {
		return nil, fmt.Errorf("erro ao desserializar as vendas por dia: %w", err)
	}

	return &report, nil
}
