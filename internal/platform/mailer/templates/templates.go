// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package templates holds the embedded email bodies and renders them.
//
// Each email is three files sharing a base name:
// <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

// Template names.
const (
	VerifyEmail = "verify_email"
)

// VerifyEmailData feeds the verify_email templates.
type VerifyEmailData struct {
	Name        string
	Email       string
	ProductName string
	VerifyURL   string
	ExpiresIn   string
}

// defaultFn supports pipe usage: {{ .Name | default "there" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.IsZero() {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"default": defaultFn,
		"upper":   strings.ToUpper,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

func renderFile(filename string, isHTML bool, data any) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)

	if isHTML {
		tpl, parseErr := htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
		if parseErr != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, parseErr)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, parseErr := texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
		if parseErr != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, parseErr)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render renders the subject, text and html parts for the given base name.
func Render(name string, data any) (subject string, text string, html string, err error) {
	subject, err = renderFile(name+".subject.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderFile(name+".text.tmpl", false, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", true, data)
	if err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
