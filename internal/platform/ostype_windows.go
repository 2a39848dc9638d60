//go:build windows

package platform

func osType() (string, error) {
	return OSTypeWindows, nil
}
