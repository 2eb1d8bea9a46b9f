package store

// Schema v1 - the relational motor model.
// manufacturers 1:N motors 1:N thrust_curves 1:N thrust_data, with cascade
// deletes below the motor level. The implicit (0,0) origin point of a curve
// is never stored.
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS manufacturers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT UNIQUE NOT NULL,
  abbrev TEXT
);

CREATE TABLE IF NOT EXISTS motors (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  manufacturer_id INTEGER NOT NULL REFERENCES manufacturers(id),
  tc_motor_id TEXT UNIQUE,
  designation TEXT NOT NULL,
  common_name TEXT,
  impulse_class TEXT,
  diameter REAL,
  length REAL,
  -- Derived from the preferred curve; never hand-edited
  total_impulse REAL,
  avg_thrust REAL,
  max_thrust REAL,
  burn_time REAL,
  propellant_weight REAL,
  total_weight REAL,
  type TEXT,
  delays TEXT,
  case_info TEXT,
  prop_info TEXT,
  sparky INTEGER NOT NULL DEFAULT 0,
  info_url TEXT,
  updated_on TEXT,
  UNIQUE (manufacturer_id, designation)
);

CREATE TABLE IF NOT EXISTS thrust_curves (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  motor_id INTEGER NOT NULL REFERENCES motors(id) ON DELETE CASCADE,
  tc_simfile_id TEXT UNIQUE,
  source TEXT,
  format TEXT,
  license TEXT,
  info_url TEXT,
  data_url TEXT,
  total_impulse REAL,
  avg_thrust REAL,
  max_thrust REAL,
  burn_time REAL
);

CREATE TABLE IF NOT EXISTS thrust_data (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  curve_id INTEGER NOT NULL REFERENCES thrust_curves(id) ON DELETE CASCADE,
  time_seconds REAL NOT NULL,
  force_newtons REAL NOT NULL
);

-- Build metadata (schema_version, database_version, counts, timestamps)
CREATE TABLE IF NOT EXISTS meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`

// Schema v2 - query indexes for client-side lookups
const schemaV2 = `
CREATE INDEX IF NOT EXISTS idx_motors_manufacturer ON motors(manufacturer_id);
CREATE INDEX IF NOT EXISTS idx_motors_common_name ON motors(common_name);
CREATE INDEX IF NOT EXISTS idx_curves_motor ON thrust_curves(motor_id);
CREATE INDEX IF NOT EXISTS idx_thrust_data_curve ON thrust_data(curve_id, time_seconds);
`
