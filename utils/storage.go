package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	storage "github.com/supabase-community/storage-go"
)

const exportBucket = "survey_exports"

// UploadExport đẩy file export (CSV) lên bucket Supabase và trả public
// URL. Trả lỗi khi storage chưa cấu hình — caller fallback sang trả
// file inline.
func UploadExport(data []byte, filename string, contentType string) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		return "", errors.New("supabase storage chưa cấu hình")
	}

	storageClient := storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)

	objectPath := fmt.Sprintf("exports/%s", filename)

	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}

	if _, err := storageClient.UploadFile(exportBucket, objectPath, bytes.NewReader(data), options); err != nil {
		return "", err
	}

	publicURL := storageClient.GetPublicUrl(exportBucket, objectPath)
	return publicURL.SignedURL, nil
}
