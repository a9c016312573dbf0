package employee

// EmployeeRow is the directory listing row. Field names follow the reporting
// contract the existing device-log tooling speaks.
type EmployeeRow struct {
	EmployeeID           int    `json:"EmployeeId"`
	EmployeeName         string `json:"EmployeeName"`
	NumericCode          string `json:"NumericCode"`
	EmployeeCodeInDevice string `json:"EmployeeCodeInDevice"`
}

func ToRow(e Employee) EmployeeRow {
	return EmployeeRow{
		EmployeeID:           e.ID,
		EmployeeName:         e.Name,
		NumericCode:          e.NumericCode,
		EmployeeCodeInDevice: e.CodeInDevice,
	}
}
