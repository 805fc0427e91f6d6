package reports

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"LabLend-backend/internal/platform/apierr"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct{ svc *Service }

// RegisterRoutes: すべて ADMIN 用
func RegisterRoutes(admin gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	admin.GET("/reports/most-borrowed", h.MostBorrowed)
	admin.GET("/reports/most-repaired", h.MostRepaired)
	admin.GET("/reports/loans-by-lab", h.LoansByLab)
	admin.GET("/reports/repairs-by-technician", h.RepairsByTechnician)
	admin.GET("/reports/loans-monthly", h.LoansMonthly)
	admin.GET("/reports/loans-yearly", h.LoansYearly)
	admin.GET("/reports/summary", h.Summary)
}

// render は format に応じて JSON / CSV / XLSX を返す
func render(c *gin.Context, v any, table func() Table) {
	format, ok := ParseFormat(c.Query("format"))
	if !ok {
		apierr.Respond(c, apierr.InvalidField("format", "format must be json, csv or xlsx"))
		return
	}
	if format == FormatJSON {
		c.JSON(http.StatusOK, v)
		return
	}

	t := table()
	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		enc, ok := ParseEncoding(c.Query("encoding"))
		if !ok {
			apierr.Respond(c, apierr.InvalidField("encoding", "encoding must be utf8 or sjis"))
			return
		}
		if err := WriteCSV(&buf, t, enc); err != nil {
			apierr.Respond(c, err)
			return
		}
		ct := "text/csv; charset=utf-8"
		if enc == EncShiftJIS {
			ct = "text/csv; charset=Shift_JIS"
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, t.Name))
		c.Data(http.StatusOK, ct, buf.Bytes())
	case FormatXLSX:
		if err := WriteXLSX(&buf, t); err != nil {
			apierr.Respond(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, t.Name))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}

// MostBorrowed godoc
// @Summary  貸出回数の多い機器
// @Tags     reports
// @Produce  json
// @Param    from   query string false "YYYY-MM-DD"
// @Param    to     query string false "YYYY-MM-DD"
// @Param    limit  query int    false "1-100 (default 10)"
// @Param    format query string false "json|csv|xlsx"
// @Success  200 {array} EquipmentCount
// @Security BearerAuth
// @Router   /reports/most-borrowed [get]
func (h *Handler) MostBorrowed(c *gin.Context) {
	r, err := ParseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	limit, err := ParseLimit(c.Query("limit"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	rows, err := h.svc.MostBorrowed(c.Request.Context(), r, limit)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	render(c, rows, func() Table { return equipmentTable("most-borrowed", rows) })
}

// MostRepaired godoc
// @Summary  修理回数の多い機器
// @Tags     reports
// @Produce  json
// @Param    from   query string false "YYYY-MM-DD"
// @Param    to     query string false "YYYY-MM-DD"
// @Param    limit  query int    false "1-100 (default 10)"
// @Param    format query string false "json|csv|xlsx"
// @Success  200 {array} EquipmentCount
// @Security BearerAuth
// @Router   /reports/most-repaired [get]
func (h *Handler) MostRepaired(c *gin.Context) {
	r, err := ParseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	limit, err := ParseLimit(c.Query("limit"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	rows, err := h.svc.MostRepaired(c.Request.Context(), r, limit)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	render(c, rows, func() Table { return equipmentTable("most-repaired", rows) })
}

// LoansByLab godoc
// @Summary  研究室別の貸出件数
// @Tags     reports
// @Produce  json
// @Param    from query string false "YYYY-MM-DD"
// @Param    to query string false "YYYY-MM-DD"
// @Param    format query string false "json|csv|xlsx"
// @Success  200 {array} LabCount
// @Failure  400 {object} map[string]any
// @Security BearerAuth
// @Router   /reports/loans-by-lab [get]
func (h *Handler) LoansByLab(c *gin.Context) {
	r, err := ParseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	rows, err := h.svc.LoansByLab(c.Request.Context(), r)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	render(c, rows, func() Table { return labTable(rows) })
}

// RepairsByTechnician godoc
// @Summary  技術者別の修理件数
// @Tags     reports
// @Produce  json
// @Param    from query string false "YYYY-MM-DD"
// @Param    to query string false "YYYY-MM-DD"
// @Param    format query string false "json|csv|xlsx"
// @Success  200 {array} TechnicianCount
// @Failure  400 {object} map[string]any
// @Security BearerAuth
// @Router   /reports/repairs-by-technician [get]
func (h *Handler) RepairsByTechnician(c *gin.Context) {
	r, err := ParseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	rows, err := h.svc.RepairsByTechnician(c.Request.Context(), r)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	render(c, rows, func() Table { return technicianTable(rows) })
}

// LoansMonthly godoc
// @Summary  月別貸出件数（12か月分）
// @Tags     reports
// @Produce  json
// @Param    year   query int    false "YYYY (default: this year)"
// @Param    format query string false "json|csv|xlsx"
// @Success  200 {array} PeriodCount
// @Security BearerAuth
// @Router   /reports/loans-monthly [get]
func (h *Handler) LoansMonthly(c *gin.Context) {
	year, err := h.svc.ParseYear(c.Query("year"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	rows, err := h.svc.LoansMonthly(c.Request.Context(), year)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	render(c, rows, func() Table { return periodTable(fmt.Sprintf("loans-monthly-%d", year), rows) })
}

// LoansYearly godoc
// @Summary  年別貸出件数
// @Tags     reports
// @Produce  json
// @Param    format query string false "json|csv|xlsx"
// @Success  200 {array} PeriodCount
// @Failure  400 {object} map[string]any
// @Security BearerAuth
// @Router   /reports/loans-yearly [get]
func (h *Handler) LoansYearly(c *gin.Context) {
	rows, err := h.svc.LoansYearly(c.Request.Context())
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	render(c, rows, func() Table { return periodTable("loans-yearly", rows) })
}

// Summary godoc
// @Summary  機器・貸出・修理の現況
// @Tags     reports
// @Produce  json
// @Param    format query string false "json|csv|xlsx"
// @Success  200 {object} Summary
// @Security BearerAuth
// @Router   /reports/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	render(c, sum, func() Table { return summaryTable(sum) })
}
