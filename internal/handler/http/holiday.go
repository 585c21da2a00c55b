package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.Service
}

func NewHolidayHandler(holidayService holiday.Service) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
	}
}

// List implements HolidayHandler.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := holiday.ListHolidaysRequest{
		Year:  r.URL.Query().Get("year"),
		Month: r.URL.Query().Get("month"),
	}

	year, month, err := req.Parse()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holiday.ListHolidaysResponse{
		Holidays: h.holidayService.ListHolidays(r.Context(), year, month),
	})
}
