package model

// DisplayPins maps the TFT SPI signals to ESP32 GPIOs. -1 marks a signal
// that is not wired to a GPIO (e.g. reset tied to EN).
type DisplayPins struct {
	MOSI int `json:"mosi" yaml:"mosi"`
	MISO int `json:"miso" yaml:"miso"`
	SCLK int `json:"sclk" yaml:"sclk"`
	CS   int `json:"cs" yaml:"cs"`
	DC   int `json:"dc" yaml:"dc"`
	RST  int `json:"rst" yaml:"rst"`
	BL   int `json:"bl" yaml:"bl"`
}

// Outputs returns the pins the ESP32 drives, keyed by signal name.
// MISO is an input and is not included.
func (p DisplayPins) Outputs() map[string]int {
	return map[string]int{
		"mosi": p.MOSI,
		"sclk": p.SCLK,
		"cs":   p.CS,
		"dc":   p.DC,
		"rst":  p.RST,
		"bl":   p.BL,
	}
}

// All returns every pin keyed by signal name.
func (p DisplayPins) All() map[string]int {
	pins := p.Outputs()
	pins["miso"] = p.MISO
	return pins
}

// DisplayConfig is the display driver build configuration.
type DisplayConfig struct {
	Info             string      `json:"info" yaml:"info"`
	Driver           string      `json:"driver" yaml:"driver"`
	Width            int         `json:"width" yaml:"width"`
	Height           int         `json:"height" yaml:"height"`
	HSPI             bool        `json:"hspi" yaml:"hspi"`
	Pins             DisplayPins `json:"pins" yaml:"pins"`
	SPIFrequency     int         `json:"spi_frequency" yaml:"spi_frequency"`
	SPIReadFrequency int         `json:"spi_read_frequency" yaml:"spi_read_frequency"`
	Fonts            []string    `json:"fonts" yaml:"fonts"`
	SmoothFont       bool        `json:"smooth_font" yaml:"smooth_font"`
}

// Known display drivers
const (
	DriverILI9341 = "ILI9341"
	DriverST7789  = "ST7789"
	DriverILI9488 = "ILI9488"
	DriverST7735  = "ST7735"
)

// KnownFonts are the font groups the graphics library can load.
var KnownFonts = []string{"GLCD", "FONT2", "FONT4", "FONT6", "FONT7", "FONT8", "GFXFF"}

// DefaultDisplay returns the CYD (ESP32-2432S028) pin map.
func DefaultDisplay() *DisplayConfig {
	return &DisplayConfig{
		Info:   "CYD ESP32-2432S028",
		Driver: DriverILI9341,
		Width:  240,
		Height: 320,
		HSPI:   true,
		Pins: DisplayPins{
			MOSI: 13,
			MISO: 12,
			SCLK: 14,
			CS:   15,
			DC:   2,
			RST:  -1,
			BL:   21,
		},
		SPIFrequency:     27_000_000,
		SPIReadFrequency: 16_000_000,
		Fonts:            []string{"GLCD", "FONT2", "FONT4", "FONT6", "FONT7", "FONT8", "GFXFF"},
		SmoothFont:       true,
	}
}
