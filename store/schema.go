package store

const Schema = `
CREATE TABLE IF NOT EXISTS portfolios (
	portfolio_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	us_stock REAL NOT NULL,
	international_stock REAL NOT NULL,
	bond REAL NOT NULL,
	us_fund TEXT NOT NULL,
	international_fund TEXT NOT NULL,
	bond_fund TEXT NOT NULL,
	account_values TEXT NOT NULL,
	monthly_contribution REAL NOT NULL,
	years_to_grow INTEGER NOT NULL,
	expected_return_us REAL NOT NULL,
	expected_return_intl REAL NOT NULL,
	expected_return_bond REAL NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	trials INTEGER NOT NULL,
	horizon INTEGER NOT NULL,
	assumption TEXT NOT NULL,
	summary TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
