package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    run_at               TEXT NOT NULL,
    total_sessions       INTEGER NOT NULL,
    total_messages       INTEGER NOT NULL,
    total_input_tokens   INTEGER NOT NULL,
    total_output_tokens  INTEGER NOT NULL,
    total_cost_usd       REAL NOT NULL,
    longest_streak_days  INTEGER NOT NULL,
    current_streak_days  INTEGER NOT NULL,
    unique_projects      INTEGER NOT NULL,
    personality          TEXT,
    coding_city          TEXT,
    payload              TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_run_at ON runs(run_at);
`
