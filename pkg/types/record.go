package types

// Field keys in canonical column order. The key is used in JSON and as the
// lookup name accepted by the normalizer; Header holds the on-disk labels.
const (
	FieldName             = "name"
	FieldSerial           = "serial"
	FieldCategory         = "category"
	FieldType             = "type"
	FieldSubsidyProgram   = "subsidy_program"
	FieldEducationLevel   = "education_level"
	FieldQuantity         = "quantity"
	FieldIntakeDate       = "intake_date"
	FieldSupplier         = "supplier"
	FieldTaxID            = "tax_id"
	FieldInvoiceNumber    = "invoice_number"
	FieldStatus           = "status"
	FieldResponsibleParty = "responsible_party"
	FieldLocation         = "location"
	FieldNotes            = "notes"
	FieldImage            = "image"
)

// Fields lists the field keys in canonical column order.
var Fields = []string{
	FieldName,
	FieldSerial,
	FieldCategory,
	FieldType,
	FieldSubsidyProgram,
	FieldEducationLevel,
	FieldQuantity,
	FieldIntakeDate,
	FieldSupplier,
	FieldTaxID,
	FieldInvoiceNumber,
	FieldStatus,
	FieldResponsibleParty,
	FieldLocation,
	FieldNotes,
	FieldImage,
}

// Header is the canonical header row. A store whose first row differs from
// it in length or in any value gets the row rewritten before data is read.
var Header = []string{
	"Name",
	"Serial",
	"Category",
	"Type",
	"Subsidy Program",
	"Education Level",
	"Quantity",
	"Intake Date",
	"Supplier",
	"Tax ID",
	"Invoice Number",
	"Status",
	"Responsible Party",
	"Location",
	"Notes",
	"Image",
}

// Column indexes into a row, matching Header.
const (
	ColName = iota
	ColSerial
	ColCategory
	ColType
	ColSubsidyProgram
	ColEducationLevel
	ColQuantity
	ColIntakeDate
	ColSupplier
	ColTaxID
	ColInvoiceNumber
	ColStatus
	ColResponsibleParty
	ColLocation
	ColNotes
	ColImage

	NumColumns
)

// FirstDataRow is the row-number of the first record; row 1 is the header.
const FirstDataRow = 2

// DefaultDecommissionLabel is the status written by Decommission when the
// caller does not supply one.
const DefaultDecommissionLabel = "Dado de baja"

// Record is one inventory entry.
type Record struct {
	Name             string   `json:"name"`
	Serial           string   `json:"serial"`
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	SubsidyProgram   string   `json:"subsidy_program"`
	EducationLevel   string   `json:"education_level"`
	Quantity         Quantity `json:"quantity"`
	IntakeDate       string   `json:"intake_date"`
	Supplier         string   `json:"supplier"`
	TaxID            string   `json:"tax_id"`
	InvoiceNumber    string   `json:"invoice_number"`
	Status           string   `json:"status"`
	ResponsibleParty string   `json:"responsible_party"`
	Location         string   `json:"location"`
	Notes            string   `json:"notes"`
	Image            string   `json:"image"`

	// RowNumber is the physical row holding the record, or 0 when the
	// record has not been read from or written to a store.
	RowNumber int `json:"row_number,omitempty"`
}

// Row returns the record's cell values in canonical column order.
func (r Record) Row() []string {
	return []string{
		r.Name,
		r.Serial,
		r.Category,
		r.Type,
		r.SubsidyProgram,
		r.EducationLevel,
		r.Quantity.String(),
		r.IntakeDate,
		r.Supplier,
		r.TaxID,
		r.InvoiceNumber,
		r.Status,
		r.ResponsibleParty,
		r.Location,
		r.Notes,
		r.Image,
	}
}

// RecordFromRow builds a record from cell values in canonical column order.
// Missing trailing cells are read as empty. The quantity cell is parsed
// strictly; use the normalizer for lenient input.
func RecordFromRow(row []string, rowNumber int) Record {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	q, _ := ParseQuantity(cell(ColQuantity))
	return Record{
		Name:             cell(ColName),
		Serial:           cell(ColSerial),
		Category:         cell(ColCategory),
		Type:             cell(ColType),
		SubsidyProgram:   cell(ColSubsidyProgram),
		EducationLevel:   cell(ColEducationLevel),
		Quantity:         q,
		IntakeDate:       cell(ColIntakeDate),
		Supplier:         cell(ColSupplier),
		TaxID:            cell(ColTaxID),
		InvoiceNumber:    cell(ColInvoiceNumber),
		Status:           cell(ColStatus),
		ResponsibleParty: cell(ColResponsibleParty),
		Location:         cell(ColLocation),
		Notes:            cell(ColNotes),
		Image:            cell(ColImage),
		RowNumber:        rowNumber,
	}
}

// Fields returns the record as a field-key map of cell strings.
func (r Record) Fields() map[string]string {
	row := r.Row()
	m := make(map[string]string, len(Fields))
	for i, k := range Fields {
		m[k] = row[i]
	}
	return m
}

// Selection returns the selection entry addressing this record.
func (r Record) Selection() Selection {
	return Selection{Serial: r.Serial, RowNumber: r.RowNumber}
}

// WithoutRow returns a copy of the record with RowNumber cleared.
func (r Record) WithoutRow() Record {
	r.RowNumber = 0
	return r
}
