package adaptor

import (
	"errors"
	"net/http"

	"hotel-reservations/internal/data/entity"
	"hotel-reservations/internal/usecase"
	"hotel-reservations/pkg/apperrors"
	"hotel-reservations/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError translates a service error into the HTTP response.
// Classified errors keep their message and carry a stable machine code;
// anything unclassified is an internal error and its details stay in
// the logs.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperrors.KindValidation:
			log.Warn(operation+" validation failed", zap.Error(err))
			utils.ResponseError(w, http.StatusBadRequest, string(appErr.Kind), appErr.Message, nil)
			return
		case apperrors.KindNotFound:
			log.Warn(operation+" failed - not found", zap.Error(err))
			utils.ResponseError(w, http.StatusNotFound, string(appErr.Kind), appErr.Message, nil)
			return
		case apperrors.KindAuthorization:
			log.Warn(operation+" failed - forbidden", zap.Error(err))
			utils.ResponseError(w, http.StatusForbidden, string(appErr.Kind), appErr.Message, nil)
			return
		case apperrors.KindConflict:
			log.Warn(operation+" failed - conflict", zap.Error(err))
			utils.ResponseError(w, http.StatusConflict, string(appErr.Kind), appErr.Message, nil)
			return
		}
	}

	log.Error("Failed to "+operation, zap.Error(err))
	utils.ResponseInternalError(w, "Internal server error")
}

// actorFromContext rebuilds the authenticated actor that the auth
// middleware stored on the request context.
func actorFromContext(r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}

	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}

	actor := usecase.Actor{
		ID:   userID,
		Role: entity.UserRole(role),
	}
	if hotelID, ok := utils.GetHotelIDFromContext(r.Context()); ok {
		actor.HotelID = &hotelID
	}

	return actor, true
}
