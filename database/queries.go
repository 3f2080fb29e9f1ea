package database

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/flexihtml/flexihtml/config"
	"github.com/flexihtml/flexihtml/logger"
)

type Query struct {
	Select    string
	Where     string
	WhereArgs []interface{}
	OrderBy   string
	Limit     uint64
	Offset    uint64
	InnerJoin string
}

func buildquery(columns string, table string, qu Query, count bool) string {
	var query strings.Builder
	query.WriteString("select ")

	if qu.InnerJoin != "" {
		if strings.Contains(columns, table+".") {
			query.WriteString(columns + " from " + table)
		} else {
			if count {
				query.WriteString("count(*) from " + table)
			} else {
				query.WriteString(table + ".* from " + table)
			}
		}
		query.WriteString(" inner join " + qu.InnerJoin)
	} else {
		query.WriteString(columns + " from " + table)
	}
	if qu.Where != "" {
		query.WriteString(" where " + qu.Where)
	}
	if qu.OrderBy != "" {
		query.WriteString(" order by " + qu.OrderBy)
	}
	if qu.Limit != 0 {
		if qu.Offset != 0 {
			query.WriteString(" limit " + strconv.Itoa(int(qu.Offset)) + ", " + strconv.Itoa(int(qu.Limit)))
		} else {
			query.WriteString(" limit " + strconv.Itoa(int(qu.Limit)))
		}
	}
	return query.String()
}

//Uses column id
func CountRows(table string, qu Query) (int, error) {
	cfg_general := config.ConfigGetGeneral()
	qu.Offset = 0
	qu.Limit = 0
	if strings.EqualFold(cfg_general.DBLogLevel, "debug") {
		logger.Log.Debug("query count: ", buildquery("count(*)", table, qu, true), " -args: ", qu.WhereArgs)
	}
	var counter int
	rows, err := DB.Query(buildquery("count(*)", table, qu, true), qu.WhereArgs...)
	if err != nil {
		logger.Log.Error("Query: ", buildquery("count(*)", table, qu, true), " error: ", err)
		return 0, err
	}
	defer rows.Close()
	rows.Next()
	rows.Scan(&counter)
	return counter, nil
}

//QueryRowsMap returns rows as generic column->value maps. The grid and the
//suggestion endpoint use this since they work against registered tables,
//not compiled-in structs.
func QueryRowsMap(table string, qu Query) ([]map[string]interface{}, error) {
	columns := "*"
	if qu.Select != "" {
		columns = qu.Select
	}
	counter, counterr := CountRows(table, qu)
	if counter == 0 || counterr != nil {
		return []map[string]interface{}{}, counterr
	}
	query := buildquery(columns, table, qu, false)
	cfg_general := config.ConfigGetGeneral()

	if strings.EqualFold(cfg_general.DBLogLevel, "debug") {
		logger.Log.Debug("query count: ", query, " -args: ", qu.WhereArgs)
	}
	rows, err := DB.Queryx(query, qu.WhereArgs...)
	if err != nil {
		logger.Log.Error("Query: ", query, " error: ", err)
		return []map[string]interface{}{}, err
	}

	defer rows.Close()
	if qu.Limit >= 1 && qu.Limit < uint64(counter) {
		counter = int(qu.Limit)
	}
	result := make([]map[string]interface{}, 0, counter)
	for rows.Next() {
		item := map[string]interface{}{}
		err2 := rows.MapScan(item)
		if err2 != nil {
			logger.Log.Error("Query2: ", query, " error: ", err2)
			return []map[string]interface{}{}, err2
		}
		result = append(result, item)
	}
	return result, nil
}

//QueryColumnValues returns the distinct values of one column, used to feed
//suggestion lists.
func QueryColumnValues(table string, column string, qu Query) ([]interface{}, error) {
	qu.Select = "distinct " + column
	query := buildquery(qu.Select, table, qu, false)
	cfg_general := config.ConfigGetGeneral()

	if strings.EqualFold(cfg_general.DBLogLevel, "debug") {
		logger.Log.Debug("query count: ", query, " -args: ", qu.WhereArgs)
	}
	rows, err := DB.Query(query, qu.WhereArgs...)
	if err != nil {
		logger.Log.Error("Query: ", query, " error: ", err)
		return nil, err
	}
	defer rows.Close()
	var result []interface{}
	for rows.Next() {
		var value interface{}
		if err2 := rows.Scan(&value); err2 != nil {
			logger.Log.Error("Query2: ", query, " error: ", err2)
			return nil, err2
		}
		result = append(result, value)
	}
	return result, nil
}

func insertmapprepare(table string, insert map[string]interface{}) (string, []interface{}) {
	query := "INSERT INTO " + table + " ("
	i := 0
	columns := ""
	values := ""
	args := make([]interface{}, 0, len(insert))
	for idx, val := range insert {
		if i != 0 {
			columns += ","
			values += ","
		}
		i += 1
		columns += idx
		values += "?"
		args = append(args, val)
	}
	query += columns + ") VALUES (" + values + ")"
	return query, args
}

func InsertRowMap(table string, insert map[string]interface{}) (sql.Result, error) {
	query, args := insertmapprepare(table, insert)
	result, err := dbexec(query, args)
	if err != nil {
		logger.Log.Error("Insert: ", table, " values: ", insert, " error: ", err)
	}
	return result, err
}

func insertarrayprepare(table string, columns []string) string {
	query := "INSERT INTO " + table + " ("
	cols := ""
	vals := ""
	for idx := range columns {
		if idx != 0 {
			cols += ","
			vals += ","
		}
		cols += columns[idx]
		vals += "?"
	}
	query += cols + ") VALUES (" + vals + ")"
	return query
}

func InsertArray(table string, columns []string, values []interface{}) (sql.Result, error) {
	query := insertarrayprepare(table, columns)
	result, err := dbexec(query, values)
	if err != nil {
		logger.Log.Error("Insert: ", table, " values: ", columns, values, " error: ", err)
	}
	return result, err
}

func updatearrayprepare(table string, columns []string, values []interface{}, qu Query) (string, []interface{}) {
	query := "UPDATE " + table + " SET "
	for idx := range columns {
		if idx != 0 {
			query += ","
		}
		query += columns[idx] + " = ?"
	}
	if qu.Where != "" {
		query += " where " + qu.Where
	}
	if len(qu.WhereArgs) >= 1 {
		values = append(values, qu.WhereArgs...)
	}
	return query, values
}

func UpdateArray(table string, columns []string, values []interface{}, qu Query) (sql.Result, error) {
	query, args := updatearrayprepare(table, columns, values, qu)
	result, err := dbexec(query, args)
	if err != nil {
		logger.Log.Error("Update: ", table, " values: ", columns, values, " where: ", qu.Where, " whereargs: ", qu.WhereArgs, " error: ", err)
	}
	return result, err
}

func updatecolprepare(table string, column string, value interface{}, qu Query) (string, []interface{}) {
	query := "UPDATE " + table + " SET " + column + " = ?"
	if qu.Where != "" {
		query += " where " + qu.Where
	}
	args := make([]interface{}, 0, len(qu.WhereArgs)+1)
	args = append(args, value)
	if len(qu.WhereArgs) >= 1 {
		args = append(args, qu.WhereArgs...)
	}
	return query, args
}

func UpdateColumn(table string, column string, value interface{}, qu Query) (sql.Result, error) {
	query, args := updatecolprepare(table, column, value, qu)
	result, err := dbexec(query, args)
	if err != nil {
		logger.Log.Error("Update: ", table, " values: ", column, value, " where: ", qu.Where, " whereargs: ", qu.WhereArgs, " error: ", err)
	}
	return result, err
}

func DeleteRow(table string, qu Query) (sql.Result, error) {
	query := "DELETE FROM " + table
	if qu.Where != "" {
		query += " where " + qu.Where
	}
	cfg_general := config.ConfigGetGeneral()

	if strings.EqualFold(cfg_general.DBLogLevel, "debug") {
		logger.Log.Debug("query count: ", query, " -args: ", qu.WhereArgs)
	}
	ReadWriteMu.Lock()
	result, err := DB.Exec(query, qu.WhereArgs...)
	if err != nil {
		logger.Log.Error("Delete: ", table, " where: ", qu.Where, " whereargs: ", qu.WhereArgs, " error: ", err)
	}
	ReadWriteMu.Unlock()
	return result, err
}

func Upsert(table string, update map[string]interface{}, qu Query) (sql.Result, error) {
	var counter int
	counter, _ = CountRows(table, qu)
	if counter == 0 {
		result, err := InsertRowMap(table, update)
		if err != nil {
			logger.Log.Error("Upsert-insert: ", table, " values: ", update, " where: ", qu.Where, " whereargs: ", qu.WhereArgs, " error: ", err)
		}
		return result, err
	}
	columns := make([]string, 0, len(update))
	values := make([]interface{}, 0, len(update))
	for idx, val := range update {
		columns = append(columns, idx)
		values = append(values, val)
	}
	result, err := UpdateArray(table, columns, values, qu)
	if err != nil {
		logger.Log.Error("Upsert-update: ", table, " values: ", update, " where: ", qu.Where, " whereargs: ", qu.WhereArgs, " error: ", err)
	}
	return result, err
}

func dbexec(query string, args []interface{}) (sql.Result, error) {
	cfg_general := config.ConfigGetGeneral()

	if strings.EqualFold(cfg_general.DBLogLevel, "debug") {
		logger.Log.Debug("query count: ", query, " -args: ", args)
	}
	ReadWriteMu.Lock()
	result, err := DB.Exec(query, args...)
	ReadWriteMu.Unlock()
	if err != nil {
		logger.Log.Debug("error query. ", query, " arguments. ", args)
	}
	return result, err
}
