package sqlite

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

// Times are stored as unix seconds. The zero time is stored as 0 so that it
// round-trips back to the zero time.Time.
func convertToDB_Time(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func convertFromDB_Time(secs int64, target *time.Time) error {
	if secs == 0 {
		*target = time.Time{}
		return nil
	}
	if secs < 0 {
		return fmt.Errorf("negative timestamp")
	}
	*target = time.Unix(secs, 0)
	return nil
}

func convertToDB_Args(args []string) string {
	data := rezi.EncBinary(argList(args))
	return base64.StdEncoding.EncodeToString(data)
}

func convertFromDB_Args(s string, target *[]string) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}

	var al argList
	if _, err := rezi.DecBinary(data, &al); err != nil {
		return err
	}
	*target = []string(al)
	return nil
}

// argList is the binary form of a command's validated arguments: a count
// followed by each argument.
type argList []string

func (al argList) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncInt(len(al))...)
	for i := range al {
		data = append(data, rezi.EncString(al[i])...)
	}

	return data, nil
}

func (al *argList) UnmarshalBinary(data []byte) error {
	count, bytesRead, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("decode arg count: %w", err)
	}
	data = data[bytesRead:]

	if count < 0 {
		return fmt.Errorf("decode arg count: negative count %d", count)
	}

	decoded := make([]string, count)
	for i := 0; i < count; i++ {
		decoded[i], bytesRead, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("decode arg %d: %w", i, err)
		}
		data = data[bytesRead:]
	}

	*al = decoded
	return nil
}
