package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bogleworks/boglesim/pkg/id"
	"github.com/bogleworks/boglesim/portfolio"
	"github.com/bogleworks/boglesim/simulate"
)

type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) SavePortfolio(p portfolio.Portfolio) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	accounts, err := json.Marshal(p.AccountValues)
	if err != nil {
		return "", fmt.Errorf("marshal account values: %w", err)
	}

	pid := id.New()
	now := time.Now().UTC()
	_, err = s.db.Exec(`
		INSERT INTO portfolios
		(portfolio_id, name, us_stock, international_stock, bond,
		 us_fund, international_fund, bond_fund, account_values,
		 monthly_contribution, years_to_grow,
		 expected_return_us, expected_return_intl, expected_return_bond,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pid, p.Name,
		p.Allocation.USStock, p.Allocation.International, p.Allocation.Bond,
		p.Funds.USStock, p.Funds.International, p.Funds.Bond,
		string(accounts), p.MonthlyContribution, p.YearsToGrow,
		p.ExpectedReturnUS, p.ExpectedReturnIntl, p.ExpectedReturnBond,
		now, now,
	)
	if err != nil {
		return "", err
	}
	return pid, nil
}

func (s *SQLite) GetPortfolio(pid string) (portfolio.Portfolio, error) {
	var p portfolio.Portfolio
	var accounts string

	row := s.db.QueryRow(`
		SELECT name, us_stock, international_stock, bond,
		       us_fund, international_fund, bond_fund, account_values,
		       monthly_contribution, years_to_grow,
		       expected_return_us, expected_return_intl, expected_return_bond
		FROM portfolios
		WHERE portfolio_id = ?`, pid)

	err := row.Scan(
		&p.Name,
		&p.Allocation.USStock, &p.Allocation.International, &p.Allocation.Bond,
		&p.Funds.USStock, &p.Funds.International, &p.Funds.Bond,
		&accounts, &p.MonthlyContribution, &p.YearsToGrow,
		&p.ExpectedReturnUS, &p.ExpectedReturnIntl, &p.ExpectedReturnBond,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return portfolio.Portfolio{}, fmt.Errorf("%w: portfolio %q", ErrNotFound, pid)
		}
		return portfolio.Portfolio{}, err
	}

	if err := json.Unmarshal([]byte(accounts), &p.AccountValues); err != nil {
		return portfolio.Portfolio{}, fmt.Errorf("unmarshal account values: %w", err)
	}
	return p, nil
}

func (s *SQLite) ListPortfolios() ([]PortfolioInfo, error) {
	rows, err := s.db.Query(`
		SELECT portfolio_id, name, created_at, updated_at
		FROM portfolios
		ORDER BY portfolio_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PortfolioInfo
	for rows.Next() {
		var info PortfolioInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.CreatedAt, &info.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func (s *SQLite) DeletePortfolio(pid string) error {
	res, err := s.db.Exec(`DELETE FROM portfolios WHERE portfolio_id = ?`, pid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: portfolio %q", ErrNotFound, pid)
	}
	return nil
}

func (s *SQLite) SaveRun(a simulate.Assumption, sum *simulate.Summary) (string, error) {
	assumption, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshal assumption: %w", err)
	}
	summary, err := json.Marshal(sum)
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	rid := id.New()
	_, err = s.db.Exec(`
		INSERT INTO runs (run_id, created_at, trials, horizon, assumption, summary)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rid, time.Now().UTC(), sum.Trials, a.HorizonYears,
		string(assumption), string(summary),
	)
	if err != nil {
		return "", err
	}
	return rid, nil
}

func (s *SQLite) GetRun(rid string) (RunRecord, error) {
	var rec RunRecord
	var assumption, summary string

	row := s.db.QueryRow(`
		SELECT run_id, created_at, assumption, summary
		FROM runs
		WHERE run_id = ?`, rid)

	err := row.Scan(&rec.ID, &rec.CreatedAt, &assumption, &summary)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("%w: run %q", ErrNotFound, rid)
		}
		return RunRecord{}, err
	}

	if err := json.Unmarshal([]byte(assumption), &rec.Assumption); err != nil {
		return RunRecord{}, fmt.Errorf("unmarshal assumption: %w", err)
	}
	if err := json.Unmarshal([]byte(summary), &rec.Summary); err != nil {
		return RunRecord{}, fmt.Errorf("unmarshal summary: %w", err)
	}
	return rec, nil
}

func (s *SQLite) ListRuns(limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT run_id, created_at, trials, horizon
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var info RunInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.Trials, &info.Horizon); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
