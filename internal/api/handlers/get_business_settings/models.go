package get_business_settings

// ServicePayload услуга в HTTP-ответе
type ServicePayload struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BusinessSettingsResponse HTTP response model
type BusinessSettingsResponse struct {
	Timezone   string           `json:"timezone"`
	SlotLabels []string         `json:"slotLabels"`
	Services   []ServicePayload `json:"services"`
}

// FromCatalog собирает настройки бизнеса из каталога
func FromCatalog(c Catalog) *BusinessSettingsResponse {
	catalogServices := c.Services()
	services := make([]ServicePayload, 0, len(catalogServices))
	for _, s := range catalogServices {
		services = append(services, ServicePayload{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &BusinessSettingsResponse{
		Timezone:   c.Location().String(),
		SlotLabels: c.SlotLabels(),
		Services:   services,
	}
}
