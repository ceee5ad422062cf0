package params

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/danielgtaylor/huma/v2"
)

// ParsePeriod parses an inclusive YYYY-MM-DD period. Both ends are required;
// ordering is checked by the services.
func ParsePeriod(startDate, endDate string) (civil.Date, civil.Date, error) {
	if startDate == "" || endDate == "" {
		return civil.Date{}, civil.Date{}, huma.NewError(http.StatusBadRequest, "startDate and endDate must be given together")
	}
	start, err := civil.ParseDate(startDate)
	if err != nil {
		return civil.Date{}, civil.Date{}, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
	}
	end, err := civil.ParseDate(endDate)
	if err != nil {
		return civil.Date{}, civil.Date{}, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
	}
	return start, end, nil
}
