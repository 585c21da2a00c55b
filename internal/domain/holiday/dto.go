package holiday

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"

type ListHolidaysRequest struct {
	Year  string
	Month string
}

// Parse validates the raw query values and returns them as integers.
func (r *ListHolidaysRequest) Parse() (year int, month int, err error) {
	var errs validator.ValidationErrors

	year, ok := validator.Atoi(r.Year)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
	}
	month, ok = validator.Atoi(r.Month)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
	}

	return year, month, errs.Err()
}

type ListHolidaysResponse struct {
	Holidays []string `json:"holidays"`
}
