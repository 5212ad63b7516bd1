package apierror

import (
	"net/http"

	"github.com/vietddude/payguard/internal/vendor"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// httpStatusByCode maps gRPC status codes onto the HTTP statuses used for
// retry classification.
var httpStatusByCode = map[codes.Code]int{
	codes.Canceled:           499,
	codes.Unknown:            http.StatusInternalServerError,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.Aborted:            http.StatusConflict,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Internal:           http.StatusInternalServerError,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DataLoss:           http.StatusInternalServerError,
	codes.Unauthenticated:    http.StatusUnauthorized,
}

// applyStatus fills out from a gRPC status error. ErrorInfo details become
// vendor error entries. It reports false when raw carries no gRPC status.
func applyStatus(raw error, out *Error) bool {
	st, ok := status.FromError(raw)
	if !ok || st.Code() == codes.OK {
		return false
	}

	if code, known := httpStatusByCode[st.Code()]; known {
		out.StatusCode = code
	}

	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok {
			continue
		}
		out.Errors = append(out.Errors, vendor.ErrorDetail{
			Category: info.GetDomain(),
			Code:     info.GetReason(),
			Detail:   st.Message(),
		})
	}

	if st.Message() != "" {
		out.Message = st.Message()
	}
	return true
}
