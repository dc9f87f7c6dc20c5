package common

import (
	"crypto/sha256"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	var err error
	snowflakeNode, err = snowflake.NewNode(int64(rand.Intn(1023)))
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake int64 id
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a snowflake id string
func UUID() string {
	return snowflakeNode.Generate().String()
}

// GetSecretSalt reads the password salt from the environment, falling back
// to a fixed development salt.
func GetSecretSalt() string {
	salt := os.Getenv("AUCTIONTRACK_SECRET_SALT")
	if salt == "" {
		salt = "auctiontrack-dev-salt"
	}
	return salt
}

// Sha256HashWithSalt hashes src with the given salt
func Sha256HashWithSalt(src string, salt string) string {
	h := sha256.New()
	h.Write([]byte(src + salt))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// IfEmptyStr returns defval when src is empty
func IfEmptyStr(src string, defval string) string {
	if src == "" {
		return defval
	}
	return src
}

// FileExists reports whether path exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
