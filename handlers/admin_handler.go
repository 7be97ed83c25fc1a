package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/hackfest/exports"
	"github.com/Dosada05/hackfest/services"
	"github.com/Dosada05/hackfest/storage"
)

// ExportArchiver сохраняет сформированную выгрузку и возвращает ее расположение.
type ExportArchiver interface {
	Store(ctx context.Context, fileName, contentType string, data []byte) (*storage.UploadResult, error)
}

// SheetSyncer переносит таблицу выгрузки в электронную таблицу.
type SheetSyncer interface {
	Sync(ctx context.Context, t exports.Table) (int, error)
}

type AdminHandler struct {
	adminService services.AdminService
	archive      ExportArchiver
	sheets       SheetSyncer
	now          func() time.Time
}

// NewAdminHandler создает обработчики панели администратора. archive и sheets
// могут быть nil, тогда их эндпоинты отвечают 501.
func NewAdminHandler(s services.AdminService, archive ExportArchiver, sheets SheetSyncer) *AdminHandler {
	return &AdminHandler{adminService: s, archive: archive, sheets: sheets, now: time.Now}
}

func (h *AdminHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	records, err := h.adminService.ListRegistrations(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	response := jsonResponse{
		"registrations": records,
		"total":         len(records),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Export отдает отфильтрованные регистрации файлом для скачивания.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, table, err := h.buildExport(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := exports.Write(&buf, format, table, h.now()); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", exports.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exports.FileName(table.View, format)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// ArchiveExport формирует выгрузку и сохраняет ее в объектное хранилище.
func (h *AdminHandler) ArchiveExport(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		mapServiceErrorToHTTP(w, r, fmt.Errorf("%w: object storage", services.ErrExportNotEnabled))
		return
	}
	format, table, err := h.buildExport(r)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := exports.Write(&buf, format, table, h.now()); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	res, err := h.archive.Store(r.Context(), exports.FileName(table.View, format), exports.ContentType(format), buf.Bytes())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	response := jsonResponse{
		"key":  res.Key,
		"url":  res.Location,
		"rows": len(table.Rows),
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SyncSheets перезаписывает лист таблицы для запрошенного представления.
func (h *AdminHandler) SyncSheets(w http.ResponseWriter, r *http.Request) {
	if h.sheets == nil {
		mapServiceErrorToHTTP(w, r, fmt.Errorf("%w: google sheets", services.ErrExportNotEnabled))
		return
	}
	view, err := exports.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	table, err := h.table(r, view)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	n, err := h.sheets.Sync(r.Context(), table)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sheet": table.SheetName, "rows": n}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) buildExport(r *http.Request) (exports.Format, exports.Table, error) {
	q := r.URL.Query()
	format, err := exports.ParseFormat(q.Get("format"))
	if err != nil {
		return "", exports.Table{}, err
	}
	view, err := exports.ParseView(q.Get("view"))
	if err != nil {
		return "", exports.Table{}, err
	}
	table, err := h.table(r, view)
	return format, table, err
}

func (h *AdminHandler) table(r *http.Request, view exports.View) (exports.Table, error) {
	records, err := h.adminService.ListRegistrations(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		return exports.Table{}, err
	}
	return exports.Build(view, records)
}
