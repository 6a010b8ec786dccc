package get_client_reservations

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/sessions/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Даты from/to в формате YYYY-MM-DD, в часовом поясе студии
func ToServiceRequest(
	clientID int64,
	statusStr string,
	fromStr string,
	toStr string,
	limitStr string,
	loc *time.Location,
) (*models.GetClientActivityRequest, error) {
	req := &models.GetClientActivityRequest{
		ClientID: clientID,
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим from если указана
	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	// Парсим to если указана
	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, err
		}
		req.To = &to
	}

	// Парсим limit если указан
	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}
