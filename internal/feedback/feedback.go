package feedback

import (
	"errors"

	"github.com/stemsi/quizgo/internal/api"
	"github.com/stemsi/quizgo/internal/audio"
	"github.com/stemsi/quizgo/internal/auth"
	"github.com/stemsi/quizgo/internal/loader"
	"github.com/stemsi/quizgo/internal/session"
)

// Code is a typed condition code for consistent user-facing messaging.
type Code string

const (
	// ─── Quiz flow ─────────────────────────────────────────────────────
	CodeIncompleteAnswer Code = "INCOMPLETE_ANSWER"
	CodeConfirmLeave     Code = "CONFIRM_LEAVE"
	CodeNoQuestions      Code = "NO_QUESTIONS"

	// ─── I/O failures ──────────────────────────────────────────────────
	CodeLoadFailed       Code = "LOAD_FAILED"
	CodeMediaFailed      Code = "MEDIA_FAILED"
	CodeSubmissionFailed Code = "SUBMISSION_FAILED"

	// ─── Identity ──────────────────────────────────────────────────────
	CodeIdentityRequired Code = "IDENTITY_REQUIRED"
	CodeLoginFailed      Code = "LOGIN_FAILED"

	// ─── Fallback ──────────────────────────────────────────────────────
	CodeInternal Code = "INTERNAL_ERROR"
)

// Message returns the human-readable message for a condition code.
func Message(code Code) string {
	switch code {
	case CodeIncompleteAnswer:
		return "Jawab dulu pertanyaan ini sebelum lanjut."
	case CodeConfirmLeave:
		return "Keluar dari kuis? Jawaban Anda belum dikirim."
	case CodeNoQuestions:
		return "Tes ini tidak memiliki pertanyaan."
	case CodeLoadFailed:
		return "Gagal memuat soal. Periksa koneksi Anda lalu coba lagi."
	case CodeMediaFailed:
		return "Audio tidak dapat diputar."
	case CodeSubmissionFailed:
		return "Gagal mengirim hasil. Jawaban Anda tersimpan — coba kirim lagi."
	case CodeIdentityRequired:
		return "Sesi login Anda telah berakhir. Silakan login kembali."
	case CodeLoginFailed:
		return "Email atau kata sandi salah."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}

// FromError maps a failure from any core component onto its condition
// code. Unknown errors fall back to CodeInternal.
func FromError(err error) Code {
	var mediaErr *audio.MediaLoadError
	switch {
	case errors.Is(err, session.ErrIncompleteAnswer):
		return CodeIncompleteAnswer
	case errors.Is(err, loader.ErrNoQuestions):
		return CodeNoQuestions
	case errors.Is(err, auth.ErrNoIdentity), errors.Is(err, auth.ErrTokenExpired):
		return CodeIdentityRequired
	case errors.As(err, &mediaErr):
		return CodeMediaFailed
	case api.IsAuthFailure(err):
		return CodeIdentityRequired
	case api.IsRetryable(err):
		return CodeLoadFailed
	}
	return CodeInternal
}
