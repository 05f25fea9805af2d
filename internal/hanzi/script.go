package hanzi

// Script represents the writing system used for report output
type Script string

const (
	// ScriptHans represents Simplified Chinese (zh-Hans)
	ScriptHans Script = "zh-Hans"
	// ScriptHant represents Traditional Chinese (zh-Hant)
	ScriptHant Script = "zh-Hant"
)
