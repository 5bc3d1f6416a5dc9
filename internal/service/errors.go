package service

import "errors"

var (
	ErrNoteNotFound     = errors.New("no note was found in the image")
	ErrPasswordRequired = errors.New("the note is encrypted and requires a password")
)
