package config

import (
	"os"
	"strings"
	"sync"
)

// DockerHostGateway is the name Docker Desktop resolves to the host machine.
const DockerHostGateway = "host.docker.internal"

var (
	isDockerOnce   sync.Once
	isDockerResult bool
)

// IsRunningInDocker reports whether /.dockerenv exists. The result is cached.
func IsRunningInDocker() bool {
	isDockerOnce.Do(func() {
		_, err := os.Stat("/.dockerenv")
		isDockerResult = err == nil
	})
	return isDockerResult
}

// ResolveHostForDocker rewrites a loopback database host to DockerHostGateway
// when the scaffolder runs inside a container, so a JDBC URL that says
// "localhost" still reaches the database on the host machine. The generated
// configuration files keep the URL as written.
func ResolveHostForDocker(host string) string {
	if !IsRunningInDocker() {
		return host
	}
	return resolveLoopback(host)
}

func resolveLoopback(host string) string {
	switch strings.ToLower(strings.Trim(host, "[]")) {
	case "localhost", "127.0.0.1", "::1":
		return DockerHostGateway
	default:
		return host
	}
}
