package weekconfig

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxSeriesNameLength максимальная длина названия занятия в символах
const MaxSeriesNameLength = 64

var (
	ErrEmptySeriesName   = errors.New("series name is empty")
	ErrSeriesNameTooLong = errors.New("series name is too long")
)

// NormalizeSeriesName схлопывает пробелы и проверяет длину названия
func NormalizeSeriesName(text string) (string, error) {
	name := strings.Join(strings.Fields(text), " ")
	if name == "" {
		return "", ErrEmptySeriesName
	}
	if utf8.RuneCountInString(name) > MaxSeriesNameLength {
		return "", ErrSeriesNameTooLong
	}
	return name, nil
}
