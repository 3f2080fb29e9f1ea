package database

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var DB *sqlx.DB
var ReadWriteMu *sync.RWMutex
var DBVersion string

func InitDb(dbloglevel string) {
	if _, err := os.Stat("./databases/data.db"); os.IsNotExist(err) {
		_, err := os.Create("./databases/data.db") // Create SQLite file
		if err != nil {
			log.Fatal(err.Error())
		}
	}
	db, err := sqlx.Connect("sqlite3", "file:./databases/data.db?_fk=1&_mutex=no&_cslike=0")
	if err != nil {
		log.Fatal(err)
	}
	db.SetMaxIdleConns(15)
	db.SetMaxOpenConns(5)
	ReadWriteMu = &sync.RWMutex{}
	DB = db
}

func UpgradeDB() {
	m, err := migrate.New(
		"file://./schema/db",
		"sqlite3://./databases/data.db?cache=shared&_fk=1&_mutex=no&_cslike=0",
	)
	if err != nil {
		log.Fatalf("migration failed... %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("An error occurred while syncing the database.. %v", err)
	}
	vers, _, _ := m.Version()
	DBVersion = strconv.Itoa(int(vers))
	m = nil
}

func DbQuickCheck() string {
	var str string
	rows, err := DB.Query("PRAGMA quick_check;")
	if err != nil {
		return err.Error()
	}
	defer rows.Close()
	rows.Next()
	rows.Scan(&str)
	return str
}

// Backup the database. If db is nil, then uses the existing database
// connection.
func Backup(db *sqlx.DB, backupPath string, maxbackups int) error {
	if db == nil {
		var err error
		db, err = sqlx.Connect("sqlite3", "file:./databases/data.db?_fk=true")
		if err != nil {
			return fmt.Errorf("open database data.db failed:%s", err)
		}
		defer db.Close()
	}

	_, err := db.Exec(`VACUUM INTO "` + backupPath + `"`)
	if err != nil {
		return fmt.Errorf("vacuum failed: %s", err)
	}
	RemoveOldDbBackups(maxbackups)

	return nil
}

func RemoveOldDbBackups(max int) error {
	if max == 0 {
		return nil
	}

	prefix := "data.db."
	files, err := oldDatabaseFiles(prefix)
	if err != nil {
		return err
	}

	var remove []backupInfo

	if max > 0 && max < len(files) {
		preserved := []string{}
		for _, f := range files {
			fn := f.Name()
			if !strings.HasPrefix(fn, prefix) {
				continue
			}

			preserved = append(preserved, fn)

			if len(preserved) > max {
				remove = append(remove, f)
			}
		}
	}

	for _, f := range remove {
		errRemove := os.Remove(filepath.Join("./backup", f.Name()))
		if err == nil && errRemove != nil {
			err = errRemove
		}
	}

	return err
}

func oldDatabaseFiles(prefix string) ([]backupInfo, error) {
	files, err := ioutil.ReadDir("./backup")
	if err != nil {
		return nil, fmt.Errorf("can't read log file directory: %s", err)
	}
	backupFiles := []backupInfo{}

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if strings.HasPrefix(f.Name(), prefix) {
			if t, err := timeFromName(f.Name(), prefix, ""); err == nil {
				backupFiles = append(backupFiles, backupInfo{t, f})
				continue
			}
		}
	}

	sort.Sort(byFormatTime(backupFiles))

	return backupFiles, nil
}

func timeFromName(filename, prefix, ext string) (time.Time, error) {
	if !strings.HasPrefix(filename, prefix) {
		return time.Time{}, errors.New("mismatched prefix")
	}
	if !strings.HasSuffix(filename, ext) {
		return time.Time{}, errors.New("mismatched extension")
	}
	ts := filename[len(prefix) : len(filename)-len(ext)]
	if idx := strings.Index(ts, "."); idx != -1 {
		idn := idx + 1
		ts = ts[idn:]
	}
	return time.Parse("20060102_150405", ts)
}

type backupInfo struct {
	timestamp time.Time
	os.FileInfo
}

// byFormatTime sorts by newest time formatted in the name.
type byFormatTime []backupInfo

func (b byFormatTime) Less(i, j int) bool {
	return b[i].timestamp.After(b[j].timestamp)
}

func (b byFormatTime) Swap(i, j int) {
	b[i], b[j] = b[j], b[i]
}

func (b byFormatTime) Len() int {
	return len(b)
}
