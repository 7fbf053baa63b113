package catalog

// Column positions of the catalog table (type, name, tbl_name, rootpage, sql).
const (
	colType     = 0
	colName     = 1
	colTblName  = 2
	colRootPage = 3
	colSQL      = 4
)

const TypeTable = "table"

type TableEntry struct {
	Name     string `json:"name"` // tbl_name column
	RootPage uint32 `json:"root_page"`

	Type       string `json:"type,omitempty"`
	ObjectName string `json:"object_name,omitempty"`
	SQL        string `json:"sql,omitempty"`
}
