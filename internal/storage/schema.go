package storage

// CreationScript creates every table the accessors expect. Startup applies it
// through ExecScript unless a script file is configured, in which case the
// file's content is executed instead via ExecFile. Identifier changes here
// must be mirrored in tableColumns below.
const CreationScript = `
CREATE TABLE IF NOT EXISTS products (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    name         TEXT    NOT NULL UNIQUE,
    description  TEXT,
    price        REAL    NOT NULL DEFAULT 0,
    quantity     INTEGER NOT NULL DEFAULT 0,
    illustration BLOB
);

CREATE TABLE IF NOT EXISTS users (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    pseudo      TEXT    NOT NULL UNIQUE,
    password    TEXT    NOT NULL,
    description TEXT,
    picture     BLOB
);

CREATE TABLE IF NOT EXISTS basket (
    user_id    INTEGER NOT NULL REFERENCES users(id)    ON DELETE CASCADE,
    product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    quantity   INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (user_id, product_id)
);

CREATE TABLE IF NOT EXISTS categories (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    name     TEXT    NOT NULL,
    category INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS tagged (
    product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    tag_id     INTEGER NOT NULL REFERENCES tags(id)     ON DELETE CASCADE,
    PRIMARY KEY (product_id, tag_id)
);
`

// tableColumns is the identifier allow-list. Table and column names are the
// only strings the generic accessor ever interpolates into SQL text, and
// every one must appear here first; values always travel as bind parameters.
var tableColumns = map[string][]string{
	"products":   {"id", "name", "description", "price", "quantity", "illustration"},
	"users":      {"id", "pseudo", "password", "description", "picture"},
	"basket":     {"user_id", "product_id", "quantity"},
	"categories": {"id", "name"},
	"tags":       {"id", "name", "category"},
	"tagged":     {"product_id", "tag_id"},
}

func columnAllowed(table, column string) bool {
	for _, c := range tableColumns[table] {
		if c == column {
			return true
		}
	}
	return false
}
