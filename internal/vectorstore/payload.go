package vectorstore

import "github.com/qdrant/go-client/qdrant"

// Payload conversion: schema-validation boundary between Qdrant's loosely-typed
// metadata and the typed records. Optional fields are only written when set so
// payloads stay small.

func fileRecordToPayload(rec FileRecord) map[string]any {
	payload := map[string]any{
		"filepath":      rec.Filepath,
		"filename":      rec.Filename,
		"folder_path":   rec.Folder,
		"extension":     rec.Extension,
		"file_type":     string(rec.FileType),
		"size_bytes":    rec.SizeBytes,
		"size_mb":       rec.SizeMB,
		"created":       rec.Created,
		"modified":      rec.Modified,
		"last_modified": rec.LastModified,
		"last_indexed":  rec.LastIndexed,
		"file_hash":     rec.FileHash,
		"ocr_text":      rec.OCRText,
	}
	if rec.DateTaken != "" {
		payload["date_taken"] = rec.DateTaken
	}
	if rec.CameraMake != "" {
		payload["camera_make"] = rec.CameraMake
	}
	if rec.CameraModel != "" {
		payload["camera_model"] = rec.CameraModel
	}
	if rec.ImageWidth > 0 {
		payload["image_width"] = rec.ImageWidth
	}
	if rec.ImageHeight > 0 {
		payload["image_height"] = rec.ImageHeight
	}
	if rec.GPSLatitude != "" {
		payload["gps_latitude"] = rec.GPSLatitude
		payload["gps_longitude"] = rec.GPSLongitude
	}
	return payload
}

func payloadToFileRecord(payload map[string]*qdrant.Value) FileRecord {
	return FileRecord{
		Filepath:     payloadString(payload, "filepath"),
		Filename:     payloadString(payload, "filename"),
		Folder:       payloadString(payload, "folder_path"),
		Extension:    payloadString(payload, "extension"),
		FileType:     FileType(payloadString(payload, "file_type")),
		SizeBytes:    payloadInt(payload, "size_bytes"),
		SizeMB:       payloadFloat(payload, "size_mb"),
		Created:      payloadString(payload, "created"),
		Modified:     payloadString(payload, "modified"),
		LastModified: payloadInt(payload, "last_modified"),
		LastIndexed:  payloadInt(payload, "last_indexed"),
		FileHash:     payloadString(payload, "file_hash"),
		OCRText:      payloadString(payload, "ocr_text"),
		DateTaken:    payloadString(payload, "date_taken"),
		CameraMake:   payloadString(payload, "camera_make"),
		CameraModel:  payloadString(payload, "camera_model"),
		ImageWidth:   int(payloadInt(payload, "image_width")),
		ImageHeight:  int(payloadInt(payload, "image_height")),
		GPSLatitude:  payloadString(payload, "gps_latitude"),
		GPSLongitude: payloadString(payload, "gps_longitude"),
	}
}

func faceRecordToPayload(rec FaceRecord) map[string]any {
	return map[string]any{
		"face_key":       rec.FaceKey,
		"source_file_id": rec.SourceFileID,
		"filepath":       rec.Filepath,
		"filename":       rec.Filename,
		"box_x1":         rec.Box.X1,
		"box_y1":         rec.Box.Y1,
		"box_x2":         rec.Box.X2,
		"box_y2":         rec.Box.Y2,
		"confidence":     rec.Confidence,
	}
}

func payloadToFaceRecord(payload map[string]*qdrant.Value) FaceRecord {
	return FaceRecord{
		FaceKey:      payloadString(payload, "face_key"),
		SourceFileID: payloadString(payload, "source_file_id"),
		Filepath:     payloadString(payload, "filepath"),
		Filename:     payloadString(payload, "filename"),
		Box: Box{
			X1: int(payloadInt(payload, "box_x1")),
			Y1: int(payloadInt(payload, "box_y1")),
			X2: int(payloadInt(payload, "box_x2")),
			Y2: int(payloadInt(payload, "box_y2")),
		},
		Confidence: payloadFloat(payload, "confidence"),
	}
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok && v != nil {
		return v.GetStringValue()
	}
	return ""
}

func payloadInt(payload map[string]*qdrant.Value, key string) int64 {
	v, ok := payload[key]
	if !ok || v == nil {
		return 0
	}
	if i, ok := v.Kind.(*qdrant.Value_IntegerValue); ok {
		return i.IntegerValue
	}
	// Numbers round-trip as doubles through some clients
	if d, ok := v.Kind.(*qdrant.Value_DoubleValue); ok {
		return int64(d.DoubleValue)
	}
	return 0
}

func payloadFloat(payload map[string]*qdrant.Value, key string) float64 {
	v, ok := payload[key]
	if !ok || v == nil {
		return 0
	}
	if d, ok := v.Kind.(*qdrant.Value_DoubleValue); ok {
		return d.DoubleValue
	}
	if i, ok := v.Kind.(*qdrant.Value_IntegerValue); ok {
		return float64(i.IntegerValue)
	}
	return 0
}
