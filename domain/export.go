package domain

// ExportRecord is the downloadable summary of a calculation. Values are
// preformatted strings, keys match the original download file.
type ExportRecord struct {
	CurrentBalance         string `json:"currentBalance"`
	CurrentCredit          string `json:"currentCredit"`
	TargetUtilization      string `json:"targetUtilization"`
	AdditionalCreditNeeded string `json:"additionalCreditNeeded"`
	CurrentUtilization     string `json:"currentUtilization"`
}
