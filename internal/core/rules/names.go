package rules

// Rule names
const (
	RuleRecipientCount      = "recipient-count"
	RuleHysteresisGap       = "hysteresis-gap"
	RuleAlertStorm          = "alert-storm"
	RuleRFConsistency       = "rf-consistency"
	RuleRecipientsPresent   = "recipients-present"
	RuleRecipientsLimit     = "recipients-limit"
	RuleRecipientsE164      = "recipients-e164"
	RuleRecipientsDuplicate = "recipients-duplicate"
	RuleSMSCredentials      = "sms-credentials"
	RuleWiFiCredentials     = "wifi-credentials"
	RulePlaceholderValues   = "placeholder-values"
	RuleReadInterval        = "read-interval"
	RuleLocation            = "location"
	RuleRFPin               = "rf-pin"

	RuleDisplayGeometry   = "display-geometry"
	RuleDisplayPins       = "display-pins"
	RuleSPIFrequency      = "spi-frequency"
	RuleDisplayFonts      = "display-fonts"
	RuleDisplayColorOrder = "display-color-order"

	RuleUIColor   = "ui-color"
	RuleUIMemory  = "ui-memory"
	RuleUIFonts   = "ui-fonts"
	RuleUIWidgets = "ui-widgets"
	RuleUITheme   = "ui-theme"
	RuleUITick    = "ui-tick"
)
