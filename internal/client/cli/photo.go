package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/seventour/seventour/internal/netx"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// SetPhoto uploads a profile photo. The backend hands out a presigned URL;
// the image bytes go straight to object storage, never through the API.
func (a *App) SetPhoto(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Path to image file", os.Stdout)
	if err != nil {
		return err
	}

	data, err := readFile(path)
	if err != nil {
		fmt.Println("Error: cannot read file:", err)
		return err
	}

	upload, err := a.api.ProfilePhotoUpload(ctx)
	if err != nil {
		surfaceError(err)
		return err
	}

	if err := netx.UploadToPresignedURL(ctx, upload.UploadURL, data); err != nil {
		fmt.Println("Error: upload failed:", err)
		return err
	}

	fmt.Println("Profile photo updated:", upload.PhotoURL)
	return nil
}
