package layer

type AlertLevel byte

const (
	AlertWarning AlertLevel = 1
	AlertFatal   AlertLevel = 2
)

func (l AlertLevel) String() string {
	switch l {
	case AlertWarning:
		return "Warning"
	case AlertFatal:
		return "Fatal"
	default:
		return "Invalid alert level"
	}
}

type AlertDescription byte

const (
	AlertCloseNotify            AlertDescription = 0
	AlertUnexpectedMessage      AlertDescription = 10
	AlertBadRecordMac           AlertDescription = 20
	AlertDecryptionFailed       AlertDescription = 21
	AlertRecordOverflow         AlertDescription = 22
	AlertDecompressionFailure   AlertDescription = 30
	AlertHandshakeFailure       AlertDescription = 40
	AlertNoCertificate          AlertDescription = 41
	AlertBadCertificate         AlertDescription = 42
	AlertUnsupportedCertificate AlertDescription = 43
	AlertCertificateRevoked     AlertDescription = 44
	AlertCertificateExpired     AlertDescription = 45
	AlertCertificateUnknown     AlertDescription = 46
	AlertIllegalParameter       AlertDescription = 47
	AlertUnknownCA              AlertDescription = 48
	AlertAccessDenied           AlertDescription = 49
	AlertDecodeError            AlertDescription = 50
	AlertDecryptError           AlertDescription = 51
	AlertProtocolVersion        AlertDescription = 70
	AlertInsufficientSecurity   AlertDescription = 71
	AlertInternalError          AlertDescription = 80
	AlertUserCanceled           AlertDescription = 90
	AlertNoRenegotiation        AlertDescription = 100
	AlertUnsupportedExtension   AlertDescription = 110
	AlertUnknownPSKIdentity     AlertDescription = 115
)

func (d AlertDescription) String() string {
	switch d {
	case AlertCloseNotify:
		return "CloseNotify"
	case AlertUnexpectedMessage:
		return "UnexpectedMessage"
	case AlertBadRecordMac:
		return "BadRecordMac"
	case AlertDecryptionFailed:
		return "DecryptionFailed"
	case AlertRecordOverflow:
		return "RecordOverflow"
	case AlertDecompressionFailure:
		return "DecompressionFailure"
	case AlertHandshakeFailure:
		return "HandshakeFailure"
	case AlertNoCertificate:
		return "NoCertificate"
	case AlertBadCertificate:
		return "BadCertificate"
	case AlertUnsupportedCertificate:
		return "UnsupportedCertificate"
	case AlertCertificateRevoked:
		return "CertificateRevoked"
	case AlertCertificateExpired:
		return "CertificateExpired"
	case AlertCertificateUnknown:
		return "CertificateUnknown"
	case AlertIllegalParameter:
		return "IllegalParameter"
	case AlertUnknownCA:
		return "UnknownCA"
	case AlertAccessDenied:
		return "AccessDenied"
	case AlertDecodeError:
		return "DecodeError"
	case AlertDecryptError:
		return "DecryptError"
	case AlertProtocolVersion:
		return "ProtocolVersion"
	case AlertInsufficientSecurity:
		return "InsufficientSecurity"
	case AlertInternalError:
		return "InternalError"
	case AlertUserCanceled:
		return "UserCanceled"
	case AlertNoRenegotiation:
		return "NoRenegotiation"
	case AlertUnsupportedExtension:
		return "UnsupportedExtension"
	case AlertUnknownPSKIdentity:
		return "UnknownPSKIdentity"
	default:
		return "Invalid alert description"
	}
}

type Alert struct {
	Level       AlertLevel
	Description AlertDescription
}

func (a *Alert) Marshal() ([]byte, error) {
	return []byte{byte(a.Level), byte(a.Description)}, nil
}

func (a *Alert) Unmarshal(data []byte) error {
	if len(data) < 2 {
		return deserializeErr(errBufferTooSmall)
	}

	a.Level = AlertLevel(data[0])
	a.Description = AlertDescription(data[1])

	return nil
}

func (a *Alert) ContentType() ContentType {
	return ContentTypeAlert
}

func (a *Alert) String() string {
	return "Alert " + a.Level.String() + " " + a.Description.String()
}
