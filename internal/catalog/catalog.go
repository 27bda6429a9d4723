package catalog

import (
	"fmt"
	"time"

	"github.com/kmlvnk/ST-BookingService/internal/config"
)

// Service услуга из фиксированного каталога провайдера
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
}

// Catalog статический каталог: фиксированный список меток слотов на день,
// фиксированный список услуг и таймзона бизнеса.
// Создается один раз при старте, после этого неизменяем и безопасен
// для конкурентного чтения.
type Catalog struct {
	labels    []string
	labelSet  map[string]struct{}
	services  []Service
	serviceBy map[int64]Service
	location  *time.Location
}

// New создает каталог из конфигурации
// Валидирует, что каталог слотов непустой и метки уникальны
func New(cfg config.BusinessConfig) (*Catalog, error) {
	if len(cfg.SlotLabels) == 0 {
		return nil, ErrEmptyCatalog
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, cfg.Timezone, err)
	}

	c := &Catalog{
		labels:    make([]string, 0, len(cfg.SlotLabels)),
		labelSet:  make(map[string]struct{}, len(cfg.SlotLabels)),
		services:  make([]Service, 0, len(cfg.Services)),
		serviceBy: make(map[int64]Service, len(cfg.Services)),
		location:  loc,
	}

	for _, label := range cfg.SlotLabels {
		if label == "" {
			return nil, ErrEmptyLabel
		}
		if _, ok := c.labelSet[label]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		c.labelSet[label] = struct{}{}
		c.labels = append(c.labels, label)
	}

	for _, s := range cfg.Services {
		if _, ok := c.serviceBy[s.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateService, s.ID)
		}
		svc := Service{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		}
		c.serviceBy[s.ID] = svc
		c.services = append(c.services, svc)
	}

	return c, nil
}

// SlotLabels возвращает упорядоченный список меток слотов
// Возвращается копия, чтобы вызывающий не мог изменить каталог
func (c *Catalog) SlotLabels() []string {
	labels := make([]string, len(c.labels))
	copy(labels, c.labels)
	return labels
}

// IsValidSlot проверяет, что метка слота есть в каталоге (точное совпадение)
func (c *Catalog) IsValidSlot(label string) bool {
	_, ok := c.labelSet[label]
	return ok
}

// Services возвращает список услуг в порядке конфигурации
func (c *Catalog) Services() []Service {
	services := make([]Service, len(c.services))
	copy(services, c.services)
	return services
}

// ServiceByID возвращает услугу по ID
func (c *Catalog) ServiceByID(id int64) (Service, bool) {
	s, ok := c.serviceBy[id]
	return s, ok
}

// Location возвращает таймзону бизнеса
func (c *Catalog) Location() *time.Location {
	return c.location
}

// IsBookableDate проверяет, что дата доступна для бронирования:
// не раньше сегодняшнего дня в таймзоне бизнеса.
// Дата - календарный день: её Y/M/D берутся как есть, без конвертации
// в другую таймзону (запросы парсят дату в UTC, и конвертация сдвинула бы
// день назад для таймзон западнее UTC)
func (c *Catalog) IsBookableDate(date time.Time, now time.Time) bool {
	return !isDateInPast(date, now.In(c.location))
}

// isDateInPast сравнивает календарные дни покомпонентно
func isDateInPast(date, now time.Time) bool {
	dy, dm, dd := date.Date()
	ny, nm, nd := now.Date()
	if dy != ny {
		return dy < ny
	}
	if dm != nm {
		return dm < nm
	}
	return dd < nd
}
