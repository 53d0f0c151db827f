package constants

const (
	// ESP32 GPIO numbering
	MaxGPIO          = 39
	InputOnlyGPIOMin = 34
	NotConnectedPin  = -1

	// SPI clock limits for the ESP32 HSPI/VSPI peripherals
	MaxSPIFrequency = 80_000_000

	// Recipient list capacity of the monitor sketch
	MaxRecipients = 5

	// RF replay plausibility bounds (rc-switch style fixed-code remotes)
	MaxRFBitLength = 64
	MaxRFProtocol  = 12
	MinRFPulseUS   = 50
	MaxRFPulseUS   = 5000

	// UI memory pool bounds in bytes
	MinUIMemSize = 2 * 1024
	MaxUIMemSize = 256 * 1024

	// WiFi credential lengths (802.11 / WPA2-PSK)
	MaxSSIDLength        = 32
	MinWPAPassphraseSize = 8
	MaxWPAPassphraseSize = 63
)

// Placeholder values shipped in the stock headers
const (
	PlaceholderSSID     = "your_wifi_ssid"
	PlaceholderPassword = "your_wifi_password"
	PlaceholderNumber   = "+1XXXXXXXXXX"
)
