package planner

import (
	"testing"

	"github.com/yuya-takeyama/symsync/pkg/locator"
	"github.com/yuya-takeyama/symsync/pkg/manifest"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		loc    locator.Locator
		target manifest.Target
		want   Destination
	}{
		{
			name:   "plain roots",
			loc:    locator.Locator{LocalRoot: "X", RemoteRoot: "Y"},
			target: manifest.Target{Component: "a.pdb", Hash: "H"},
			want: Destination{
				LocalDir:   "X/a.pdb/H",
				LocalFile:  "X/a.pdb/H/a.pdb",
				RemoteFile: "Y/a.pdb/H/a.pdb",
			},
		},
		{
			name:   "windows local root and https remote",
			loc:    locator.Locator{LocalRoot: `C:\sym`, RemoteRoot: "https://msdl.microsoft.com/download/symbols"},
			target: manifest.Target{Component: "ntdll.pdb", Hash: "1EB1F2F5D1D3427C1"},
			want: Destination{
				LocalDir:   `C:\sym/ntdll.pdb/1EB1F2F5D1D3427C1`,
				LocalFile:  `C:\sym/ntdll.pdb/1EB1F2F5D1D3427C1/ntdll.pdb`,
				RemoteFile: "https://msdl.microsoft.com/download/symbols/ntdll.pdb/1EB1F2F5D1D3427C1/ntdll.pdb",
			},
		},
		{
			name:   "s3 remote",
			loc:    locator.Locator{LocalRoot: "/var/sym", RemoteRoot: "s3://bucket/symbols"},
			target: manifest.Target{Component: "app.exe", Hash: "5F3A0000"},
			want: Destination{
				LocalDir:   "/var/sym/app.exe/5F3A0000",
				LocalFile:  "/var/sym/app.exe/5F3A0000/app.exe",
				RemoteFile: "s3://bucket/symbols/app.exe/5F3A0000/app.exe",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.loc, tt.target)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
			if again := Resolve(tt.loc, tt.target); again != got {
				t.Errorf("Resolve() is not deterministic: %+v != %+v", again, got)
			}
		})
	}
}
