package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedSeminarFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{name: "pdf", filename: "report.pdf", want: true},
		{name: "doc", filename: "seminar.doc", want: true},
		{name: "docx", filename: "seminar.docx", want: true},
		{name: "uppercase extension", filename: "REPORT.PDF", want: true},
		{name: "executable", filename: "report.exe", want: false},
		{name: "no extension", filename: "report", want: false},
		{name: "double extension keeps last", filename: "report.pdf.exe", want: false},
		{name: "empty", filename: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowedSeminarFile(tt.filename))
		})
	}
}

func TestHasInstitutionalDomain(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "institutional", email: "m.petrova@ams.edu.mk", want: true},
		{name: "case insensitive", email: "M.Petrova@AMS.EDU.MK", want: true},
		{name: "foreign domain", email: "m.petrova@gmail.com", want: false},
		{name: "domain as prefix only", email: "x@ams.edu.mk.evil.com", want: false},
		{name: "no at sign", email: "ams.edu.mk", want: false},
		{name: "empty", email: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasInstitutionalDomain(tt.email, "ams.edu.mk"))
		})
	}
}

func TestValidateProjectURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "github repo", raw: "https://github.com/x/y", wantErr: false},
		{name: "github subdomain", raw: "https://gist.github.com/x/y", wantErr: false},
		{name: "plain http", raw: "http://github.com/x/y", wantErr: false},
		{name: "wrong host", raw: "https://gitlab.com/x/y", wantErr: true},
		{name: "host suffix trick", raw: "https://notgithub.com/x/y", wantErr: true},
		{name: "relative", raw: "/x/y", wantErr: true},
		{name: "not a url", raw: "://bad", wantErr: true},
		{name: "ftp scheme", raw: "ftp://github.com/x/y", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectURL(tt.raw, "github.com")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
