package controllers

import (
	"net/http"

	"github.com/jiaotianpharma/warehouse-backend/api/responses"
	"github.com/jiaotianpharma/warehouse-backend/api/validators"
	"github.com/jiaotianpharma/warehouse-backend/internal/auditlog"
	pkgerrors "github.com/jiaotianpharma/warehouse-backend/pkg/errors"
	"github.com/jiaotianpharma/warehouse-backend/pkg/logger"
	"github.com/jiaotianpharma/warehouse-backend/pkg/pagination"
)

const maxLogOffset = 1 << 30

// SecurityLogList returns audit entries newest first. The count field carries
// the total number of entries so clients can page through the trail.
func SecurityLogList(svc auditlog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "audit log service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, maxLogOffset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Normalize(pagination.Params{Limit: limit, Offset: offset})

		entries, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		total, err := svc.Count(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, auditlog.NewEntryDTOs(entries), int(total))
	}
}
