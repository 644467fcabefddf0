package factorial

// CreateAttendanceShiftOperation is the GraphQL operation name sent with the mutation
const CreateAttendanceShiftOperation = "CreateAttendanceShift"

// CreateAttendanceShiftMutation is the document the Factorial web app sends when a shift
// is added from the timesheet page. Field selection must stay in sync with the response
// types in models.go.
const CreateAttendanceShiftMutation = `mutation CreateAttendanceShift($clockIn: ISO8601DateTime, $clockOut: ISO8601DateTime, $date: ISO8601Date!, $employeeId: Int!, $fetchDependencies: Boolean!, $halfDay: String, $locationType: AttendanceShiftLocationTypeEnum, $observations: String, $referenceDate: ISO8601Date!, $source: AttendanceEnumsShiftSourceEnum, $timeSettingsBreakConfigurationId: Int, $workable: Boolean) {
  attendanceMutations {
    createAttendanceShift(
      clockIn: $clockIn
      clockOut: $clockOut
      date: $date
      employeeId: $employeeId
      halfDay: $halfDay
      locationType: $locationType
      observations: $observations
      referenceDate: $referenceDate
      source: $source
      timeSettingsBreakConfigurationId: $timeSettingsBreakConfigurationId
      workable: $workable
    ) {
      errors {
        ...ErrorDetails
        __typename
      }
      shift {
        employee {
          id
          attendanceBalancesConnection(endOn: $referenceDate, startOn: $referenceDate) @include(if: $fetchDependencies) {
            nodes {
              ...TimesheetBalance
              __typename
            }
            __typename
          }
          attendanceWorkedTimesConnection(endOn: $referenceDate, startOn: $referenceDate) @include(if: $fetchDependencies) {
            nodes {
              ...TimesheetWorkedTime
              __typename
            }
            __typename
          }
          __typename
        }
        ...TimesheetPageShift
        __typename
      }
      __typename
    }
    __typename
  }
}

fragment TimesheetBalancePoolBlock on AttendanceTimeBlock {
  _uniqueKey
  equivalentMinutesInCents
  minutes
  name
  rawMinutesInCents
  sourcePoolType
  timeSettingsCustomTimeRangeCategoryId
  __typename
}

fragment TimesheetWorkedTimeBlock on AttendanceWorkedTimeBlock {
  approved
  date
  extraHour
  minutes
  poolType
  timeRangeCategoryId
  timeRangeCategoryName
  timeSettingsBreakConfigurationId
  timeType
  workable
  __typename
}

fragment TimesheetTimeSettingsBreakConfiguration on TimeSettingsBreakConfiguration {
  id
  paid
  __typename
}

fragment TimesheetPageWorkplace on LocationsLocation {
  id
  name
  __typename
}

fragment ErrorDetails on MutationError {
  ... on SimpleError {
    message
    type
    __typename
  }
  ... on StructuredError {
    field
    messages
    __typename
  }
  __typename
}

fragment TimesheetBalance on AttendanceBalance {
  id
  accumulationEndOn
  accumulationStartOn
  balancePools {
    transfers {
      ...TimesheetBalancePoolBlock
      __typename
    }
    type
    usages {
      ...TimesheetBalancePoolBlock
      __typename
    }
    __typename
  }
  dailyBalance
  dailyBalanceFromContract
  dailyBalanceFromPlanning
  date
  __typename
}

fragment TimesheetWorkedTime on AttendanceWorkedTime {
  id
  breaksMinutesRounded
  date
  dayType
  minutes
  multipliedMinutes
  pendingMinutes
  toleranceMinutesRounded
  trackedMinutes
  workedTimeBlocks {
    ...TimesheetWorkedTimeBlock
    __typename
  }
  __typename
}

fragment TimesheetPageShift on AttendanceShift {
  id
  automaticClockIn
  automaticClockOut
  clockIn
  clockInWithSeconds
  clockOut
  crossesMidnight
  date
  employeeId
  halfDay
  isOvernight
  locationType
  minutes
  observations
  periodId
  referenceDate
  showPlusOneDay
  timeSettingsBreakConfiguration {
    ...TimesheetTimeSettingsBreakConfiguration
    __typename
  }
  workable
  workplace {
    ...TimesheetPageWorkplace
    __typename
  }
  __typename
}`
