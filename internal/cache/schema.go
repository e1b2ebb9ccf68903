package cache

// Snapshot schema. row_number is the physical sheet row of the record and
// serves as the primary key.
const createRecords = `CREATE TABLE records (
    row_number INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    serial TEXT NOT NULL,
    category TEXT NOT NULL,
    type TEXT NOT NULL,
    subsidy_program TEXT NOT NULL,
    education_level TEXT NOT NULL,
    quantity TEXT NOT NULL,
    intake_date TEXT NOT NULL,
    supplier TEXT NOT NULL,
    tax_id TEXT NOT NULL,
    invoice_number TEXT NOT NULL,
    status TEXT NOT NULL,
    responsible_party TEXT NOT NULL,
    location TEXT NOT NULL,
    notes TEXT NOT NULL,
    image TEXT NOT NULL
);`

var schemaDDL = []string{
	createRecords,
}

// recordColumns lists the record columns after row_number, in canonical
// field order.
const recordColumns = "name, serial, category, type, subsidy_program, education_level, quantity, " +
	"intake_date, supplier, tax_id, invoice_number, status, responsible_party, location, notes, image"

const (
	upsertRecord = "INSERT OR REPLACE INTO records (row_number, " + recordColumns + ") " +
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	selectRecords = "SELECT row_number, " + recordColumns + " FROM records ORDER BY row_number"
	countRecords  = "SELECT COUNT(*) FROM records"
	deleteRecords = "DELETE FROM records"
)
