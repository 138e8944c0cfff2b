package assessment

import "regexp"

var mobileUA = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// IsMobileUserAgent reports whether the request came from a mobile
// device. The unlock policy's desktop exemption hangs off this.
func IsMobileUserAgent(ua string) bool {
	return mobileUA.MatchString(ua)
}
