package service

const (
	OptimalTargetPercent  = 10.0 // ideal for funding and top scores
	StandardTargetPercent = 30.0 // what most lenders look for

	// Upper bounds (inclusive) of the utilization bands.
	idealBandCeiling = 10.0
	goodBandCeiling  = 30.0
	highBandCeiling  = 50.0
	// Utilization at or above this is severe.
	severeBandFloor = 90.0

	ExportBaseName = "au-tradeline-calculation"
)
