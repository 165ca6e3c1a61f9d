package errortypes

// UnknownPlatform should be used when a VAST request names a platform with no
// entry in the capability registry. There is deliberately no fallback profile:
// emitting another platform's codec/bitrate metadata would produce a MediaFile
// the target device cannot play.
type UnknownPlatform struct {
	Message string
}

func (err *UnknownPlatform) Error() string {
	return err.Message
}

func (err *UnknownPlatform) Code() int {
	return UnknownPlatformErrorCode
}

func (err *UnknownPlatform) Severity() Severity {
	return SeverityFatal
}

// InvalidOrigin should be used when the tracking base URL is empty or
// unusable, so no tracking endpoint set can be assembled.
type InvalidOrigin struct {
	Message string
}

func (err *InvalidOrigin) Error() string {
	return err.Message
}

func (err *InvalidOrigin) Code() int {
	return InvalidOriginErrorCode
}

func (err *InvalidOrigin) Severity() Severity {
	return SeverityFatal
}

// MissingMediaFiles should be used when a creative has no video variant for
// the requested platform. A VAST document with an empty MediaFiles block is
// worse than a clear failure, since downstream players fail to render with no
// diagnostic.
type MissingMediaFiles struct {
	Message string
}

func (err *MissingMediaFiles) Error() string {
	return err.Message
}

func (err *MissingMediaFiles) Code() int {
	return MissingMediaFilesErrorCode
}

func (err *MissingMediaFiles) Severity() Severity {
	return SeverityFatal
}

// MalformedCreative should be used when a stored creative descriptor cannot be
// decoded or fails basic shape validation.
type MalformedCreative struct {
	Message string
}

func (err *MalformedCreative) Error() string {
	return err.Message
}

func (err *MalformedCreative) Code() int {
	return MalformedCreativeErrorCode
}

func (err *MalformedCreative) Severity() Severity {
	return SeverityFatal
}

// BadInput should be used when returning errors which are caused by bad input.
// It should _not_ be used if the error is a server-side issue.
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}
