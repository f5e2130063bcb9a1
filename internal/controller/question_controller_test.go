package controller

import "testing"

func TestAllowedAttachmentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{"未声明类型放行", "", true},
		{"octet-stream 放行", "application/octet-stream", true},
		{"png 图片", "image/png", true},
		{"webp 图片", "image/webp", true},
		{"PDF", "application/pdf", true},
		{"JSON", "application/json", true},
		{"可执行文件拒绝", "application/x-msdownload", false},
		{"HTML 拒绝", "text/html", false},
		{"视频拒绝", "video/mp4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := allowedAttachmentType(tt.contentType); got != tt.want {
				t.Errorf("allowedAttachmentType(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}
