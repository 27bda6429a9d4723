package get_business_settings

import (
	"time"

	"github.com/kmlvnk/ST-BookingService/internal/catalog"
)

type Catalog interface {
	SlotLabels() []string
	Services() []catalog.Service
	Location() *time.Location
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
