package dto

// UploadSheetForm carries the non-file fields of a sheet upload. The file
// itself arrives in the multipart "file" part.
type UploadSheetForm struct {
	Name string `form:"name" binding:"omitempty,max=255"`
}
