package inventory

import "github.com/mesh-intelligence/stockbook/pkg/types"

// sampleRecords are the records written by Seed when the caller supplies
// none. Their serials are fixed so seeding twice adds nothing.
var sampleRecords = []types.Record{
	{
		Name:             "Notebook Dell XPS 13",
		Serial:           "NOTE-COM-OFI-001",
		Category:         "Computadores",
		Type:             "Tangible",
		SubsidyProgram:   "SEP",
		EducationLevel:   "Media",
		Quantity:         types.NewQuantity(1),
		IntakeDate:       "2025-09-10",
		Supplier:         "TecnoProveedor Ltda.",
		TaxID:            "76.543.210-3",
		InvoiceNumber:    "F-98213",
		Status:           "Operativo",
		ResponsibleParty: "Carolina Torres",
		Location:         "Oficina Santiago",
		Notes:            "Equipo asignado a gerencia.",
	},
	{
		Name:             "Impresora HP LaserJet Pro",
		Serial:           "IMPR-IMP-OFI-001",
		Category:         "Impresoras",
		Type:             "Tangible",
		SubsidyProgram:   "Mantenimiento",
		Quantity:         types.NewQuantity(1),
		IntakeDate:       "2025-08-18",
		Supplier:         "Office Supply SPA",
		InvoiceNumber:    "F-77102",
		Status:           "En mantención",
		ResponsibleParty: "Luis Rojas",
		Location:         "Oficina Santiago",
		Notes:            "Requiere cambio de rodillo.",
	},
	{
		Name:             "Proyector Epson PowerLite",
		Serial:           "PROY-AUD-SAL-001",
		Category:         "Audiovisual",
		Type:             "Tangible",
		SubsidyProgram:   "PIE",
		EducationLevel:   "Básica",
		Quantity:         types.NewQuantity(1),
		IntakeDate:       "2025-07-05",
		Supplier:         "VisualTech",
		InvoiceNumber:    "F-55901",
		Status:           "Operativo",
		ResponsibleParty: "María Fernández",
		Location:         "Sala de reuniones - Auditorio",
		Notes:            "Lámpara reemplazada en agosto.",
	},
	{
		Name:             "Silla ergonómica",
		Serial:           "SILL-MOB-OFI-001",
		Category:         "Mobiliario",
		Type:             "Tangible",
		SubsidyProgram:   "General",
		Quantity:         types.NewQuantity(4),
		IntakeDate:       "2025-03-01",
		Supplier:         "Muebles Pro",
		InvoiceNumber:    "F-44210",
		Status:           "Operativo",
		ResponsibleParty: "Equipo de TI",
		Location:         "Oficina Valparaíso",
		Notes:            "Asignadas a estaciones hot desk.",
	},
	{
		Name:             "Router Cisco Catalyst",
		Serial:           "ROUT-RED-DAT-001",
		Category:         "Redes",
		Type:             "Tangible",
		SubsidyProgram:   "FAEP",
		Quantity:         types.NewQuantity(2),
		IntakeDate:       "2024-12-15",
		Supplier:         "NetServices",
		InvoiceNumber:    "F-33007",
		Status:           "Operativo",
		ResponsibleParty: "Departamento Redes",
		Location:         "Data Center",
		Notes:            "Configuración HA activa.",
	},
	{
		Name:             "Resmas de papel carta",
		Serial:           "RESM-INS-BOD-001",
		Category:         "Insumos",
		Type:             "Fungible",
		SubsidyProgram:   "SEP",
		EducationLevel:   "Parvularia",
		Quantity:         types.NewQuantity(40),
		IntakeDate:       "2025-03-04",
		Supplier:         "Librería Central",
		InvoiceNumber:    "F-12044",
		Status:           "Disponible",
		ResponsibleParty: "Secretaría",
		Location:         "Bodega Central",
	},
	{
		Name:             "Kit de herramientas Truper",
		Serial:           "KITD-HER-BOD-001",
		Category:         "Herramientas",
		Type:             "Tangible",
		SubsidyProgram:   "Mantenimiento",
		EducationLevel:   "Técnico-Profesional",
		Quantity:         types.NewQuantity(5),
		IntakeDate:       "2025-01-04",
		Supplier:         "Ferretería Industrial",
		InvoiceNumber:    "F-65120",
		Status:           "Disponible",
		ResponsibleParty: "Equipo Mantención",
		Location:         "Bodega Central",
		Notes:            "Asignados bajo préstamo según requerimiento.",
	},
	{
		Name:             "Tablet Samsung Galaxy Tab S9",
		Serial:           "TABL-DIS-SAL-001",
		Category:         "Dispositivos móviles",
		Type:             "Tangible",
		SubsidyProgram:   "Pro-Retención",
		EducationLevel:   "Adultos",
		Quantity:         types.NewQuantity(3),
		IntakeDate:       "2025-09-02",
		Supplier:         "Tech Mobile",
		InvoiceNumber:    "F-99021",
		Status:           "Operativo",
		ResponsibleParty: "Equipo Comercial",
		Location:         "Sala Ventas",
	},
}
