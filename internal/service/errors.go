package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("invalid parameters")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailExist          = errors.New("email is already registered")
	ErrPasswordIncorrect   = errors.New("incorrect email or password")
	ErrFarmerOnly          = errors.New("only farmers can perform this action")
	ErrConsumerOnly        = errors.New("only consumers can perform this action")
	ErrNotOwner            = errors.New("not authorized to modify this resource")
	ErrPostNotFound        = errors.New("post not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrImageNotFound       = errors.New("image not found")
	ErrAlreadyLiked        = errors.New("post already liked")
	ErrNotLiked            = errors.New("post not liked yet")
	ErrNoImages            = errors.New("no images provided")
	ErrTooManyImages       = errors.New("too many images in one upload")
	ErrFileNotSupported    = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds the size limit")
	ErrProductNotFound     = errors.New("product not found")
	ErrOutOfStock          = errors.New("insufficient stock for product")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderTransition     = errors.New("order status transition not allowed")
	ErrPredictionNotFound  = errors.New("prediction not found")
	ErrPredictionUpstream  = errors.New("prediction service unavailable")
	UnExpectedError        = errors.New("unexpected error, please try again later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrUserNotFound:       NotFound,
	ErrEmailExist:         BadRequest,
	ErrPasswordIncorrect:  Unauthorized,
	ErrFarmerOnly:         Forbidden,
	ErrConsumerOnly:       Forbidden,
	ErrNotOwner:           Unauthorized,
	ErrPostNotFound:       NotFound,
	ErrCommentNotFound:    NotFound,
	ErrImageNotFound:      NotFound,
	ErrAlreadyLiked:       BadRequest,
	ErrNotLiked:           BadRequest,
	ErrNoImages:           BadRequest,
	ErrTooManyImages:      BadRequest,
	ErrFileNotSupported:   BadRequest,
	ErrFileTooLarge:       BadRequest,
	ErrProductNotFound:    NotFound,
	ErrOutOfStock:         BadRequest,
	ErrOrderNotFound:      NotFound,
	ErrOrderTransition:    BadRequest,
	ErrPredictionNotFound: NotFound,
	ErrPredictionUpstream: InternalServerError,
	UnExpectedError:       InternalServerError,
}
