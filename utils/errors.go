package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// Error kinds exposed to clients alongside the HTTP status. Handlers pick
// the kind; the message is human-readable.
const (
	ErrKindNotFound   = "not_found"
	ErrKindForbidden  = "forbidden"
	ErrKindValidation = "validation_error"
	ErrKindConflict   = "conflict"
	ErrKindUpstream   = "upstream_error"
	ErrKindInternal   = "internal_error"
)

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{"error": title, "message": detail})
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, ErrKindNotFound, "Resource not found", ctx)
}

func CreateForbidden(ctx iris.Context) {
	CreateError(iris.StatusForbidden, ErrKindForbidden, "You are not allowed to perform this action", ctx)
}

// CreateConflict reports an overlap or duplicate; the write was aborted.
func CreateConflict(detail string, ctx iris.Context) {
	CreateError(iris.StatusConflict, ErrKindConflict, detail, ctx)
}

func CreateUpstreamError(ctx iris.Context) {
	CreateError(iris.StatusBadGateway, ErrKindUpstream, "An external provider failed; try again later", ctx)
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, ErrKindInternal, "Internal server error", ctx)
}

func CreateUsernameTaken(ctx iris.Context) {
	CreateError(iris.StatusConflict, ErrKindConflict, "Username is already taken", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(iris.StatusConflict, ErrKindConflict, "An account with this email already exists", ctx)
}

// HandleValidationErrors turns ReadJSON / validator failures into a 400 with
// per-field detail when available.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]iris.Map, 0, len(errs))
		for _, fe := range errs {
			fields = append(fields, iris.Map{
				"field": fe.Field(),
				"tag":   fe.Tag(),
				"param": fe.Param(),
			})
		}
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"error":   ErrKindValidation,
			"message": "Validation failed",
			"fields":  fields,
		})
		return
	}
	CreateError(iris.StatusBadRequest, ErrKindValidation, err.Error(), ctx)
}
